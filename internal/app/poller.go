package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/glance/internal/bar"
	"github.com/five82/glance/internal/format"
)

const defaultPollInterval = 5 * time.Second

// Serve runs reg against table until ctx is done. Polled registrations
// sample immediately and then on every tick. Sampling runs inline, so a slow
// sample delays the next tick instead of overlapping it.
func Serve(ctx context.Context, table *bar.Table, reg Registration) {
	emit := func(seg bar.Segment) { publish(table, seg) }
	if reg.Watch != nil {
		reg.Watch(ctx, emit)
		return
	}

	interval := reg.Every
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		reg.Sample(ctx, emit)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Start reserves a slot per registration, in order, and serves each on its
// own goroutine in g.
func Start(ctx context.Context, g *errgroup.Group, table *bar.Table, regs []Registration) {
	for _, reg := range regs {
		table.Reserve(reg.Name)
	}
	for _, reg := range regs {
		reg := reg
		g.Go(func() error {
			Serve(ctx, table, reg)
			return nil
		})
	}
}

// Restyle re-renders the last sample of every registration, used after the
// theme changes.
func Restyle(table *bar.Table, regs []Registration) {
	for _, reg := range regs {
		if reg.Restyle == nil {
			continue
		}
		reg.Restyle(func(seg bar.Segment) { table.Restyle(seg) })
	}
}

func publish(table *bar.Table, seg bar.Segment) {
	table.Set(seg, format.IsPlaceholder(seg))
}
