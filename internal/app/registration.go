package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/glance/internal/bar"
	"github.com/five82/glance/internal/feed"
	"github.com/five82/glance/internal/theme"
)

// Registration is one adapter on the bar. Exactly one of Sample or Watch is
// set: Sample is polled every Every, Watch pushes segments itself.
type Registration struct {
	Name  string
	Every time.Duration

	Sample func(ctx context.Context, publish func(bar.Segment))
	Watch  func(ctx context.Context, publish func(bar.Segment))

	// Restyle renders the last sample again with the current theme and hands
	// it to apply. It reports false before the first sample. Samples and
	// restyles of one registration are serialized, so apply never sees a
	// segment older than the last one published.
	Restyle func(apply func(bar.Segment)) bool
}

// Binder carries what every binding needs to render and report samples.
type Binder struct {
	Theme  *theme.Current
	Logger *slog.Logger
}

// Bind joins a typed sampler to its formatter. A sample that returns after
// ctx is done is dropped.
func Bind[T any](b Binder, name string, every time.Duration, sample func(context.Context) (T, error), render func(T, error, theme.Theme) bar.Segment) Registration {
	last := &lastSample[T]{}
	return Registration{
		Name:  name,
		Every: every,
		Sample: func(ctx context.Context, publish func(bar.Segment)) {
			v, err := sample(ctx)
			if ctx.Err() != nil {
				return
			}
			b.report(name, err)
			last.publish(v, err, func(v T, err error) {
				publish(render(v, err, b.Theme.Load()))
			})
		},
		Restyle: last.restyle(b, render),
	}
}

// BindWatch joins an event-driven source to its formatter.
func BindWatch[T any](b Binder, name string, watch func(context.Context, func(T, error)), render func(T, error, theme.Theme) bar.Segment) Registration {
	last := &lastSample[T]{}
	return Registration{
		Name: name,
		Watch: func(ctx context.Context, publish func(bar.Segment)) {
			watch(ctx, func(v T, err error) {
				if ctx.Err() != nil {
					return
				}
				b.report(name, err)
				last.publish(v, err, func(v T, err error) {
					publish(render(v, err, b.Theme.Load()))
				})
			})
		},
		Restyle: last.restyle(b, render),
	}
}

func (b Binder) report(name string, err error) {
	if err == nil || b.Logger == nil {
		return
	}
	attrs := []any{"segment", name, "error", err}
	if kind := feed.KindOf(err); kind != 0 {
		attrs = append(attrs, "kind", kind.String())
	}
	b.Logger.Warn("sample failed", attrs...)
}

// lastSample holds the most recent value. Its lock is held while the value
// is stored and published, and while a restyle renders and applies it.
type lastSample[T any] struct {
	mu  sync.Mutex
	set bool
	v   T
	err error
}

func (l *lastSample[T]) publish(v T, err error, fn func(T, error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.set, l.v, l.err = true, v, err
	fn(v, err)
}

func (l *lastSample[T]) restyle(b Binder, render func(T, error, theme.Theme) bar.Segment) func(func(bar.Segment)) bool {
	return func(apply func(bar.Segment)) bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		if !l.set {
			return false
		}
		apply(render(l.v, l.err, b.Theme.Load()))
		return true
	}
}
