package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/glance/internal/bar"
	"github.com/five82/glance/internal/format"
	"github.com/five82/glance/internal/theme"
)

func testBinder() Binder {
	return Binder{
		Theme:  theme.NewCurrent(theme.Get("Classic")),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestServe_SamplesImmediately(t *testing.T) {
	table := bar.NewTable("cpu")
	reg := Bind(testBinder(), format.NameCPUTemp, time.Hour,
		func(context.Context) (float64, error) { return 58.4, nil },
		format.CPUTemp)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Serve(ctx, table, reg)

	waitFor(t, "first sample", func() bool {
		slot, _ := table.Slot("cpu")
		return slot.Segment.Text == "58°C"
	})
}

func TestServe_TicksNeverOverlap(t *testing.T) {
	var running, maxRunning, calls atomic.Int32
	reg := Registration{
		Name:  "slow",
		Every: time.Millisecond,
		Sample: func(ctx context.Context, publish func(bar.Segment)) {
			n := running.Add(1)
			defer running.Add(-1)
			for {
				m := maxRunning.Load()
				if n <= m || maxRunning.CompareAndSwap(m, n) {
					break
				}
			}
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			publish(bar.Segment{Name: "slow", Text: "ok"})
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Serve(ctx, bar.NewTable(), reg)
		close(done)
	}()

	waitFor(t, "several samples", func() bool { return calls.Load() >= 3 })
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve did not stop after cancel")
	}
	if got := maxRunning.Load(); got != 1 {
		t.Fatalf("max concurrent samples = %d, want 1", got)
	}
}

func TestServe_FailureCountsAndPlaceholder(t *testing.T) {
	table := bar.NewTable("garage")
	reg := Bind(testBinder(), "garage", time.Millisecond,
		func(context.Context) (float64, error) { return 0, errors.New("boom") },
		func(v float64, err error, th theme.Theme) bar.Segment {
			if err != nil {
				return format.Placeholder("garage", th)
			}
			return bar.Segment{Name: "garage", Text: "ok"}
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Serve(ctx, table, reg)

	waitFor(t, "repeated failures", func() bool {
		slot, _ := table.Slot("garage")
		return slot.ConsecutiveFailures >= 2
	})
	slot, _ := table.Slot("garage")
	if !format.IsPlaceholder(slot.Segment) || slot.Segment.Foreground != "#bb1155" {
		t.Fatalf("segment = %+v, want the error placeholder", slot.Segment)
	}
}

func TestServe_Watch(t *testing.T) {
	table := bar.NewTable("volume")
	reg := BindWatch(testBinder(), format.NameVolume,
		func(ctx context.Context, fn func(float64, error)) {
			fn(0.8, nil)
			<-ctx.Done()
		},
		func(level float64, err error, th theme.Theme) bar.Segment {
			return bar.Segment{Name: format.NameVolume, Text: "level"}
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Serve(ctx, table, reg)

	waitFor(t, "watch emit", func() bool {
		slot, _ := table.Slot("volume")
		return slot.Segment.Text == "level"
	})
}

func TestStart_ReservesInOrderAndJoins(t *testing.T) {
	table := bar.NewTable()
	var mu sync.Mutex
	var started []string
	mk := func(name string) Registration {
		return Registration{
			Name:  name,
			Every: time.Hour,
			Sample: func(_ context.Context, publish func(bar.Segment)) {
				mu.Lock()
				started = append(started, name)
				mu.Unlock()
				publish(bar.Segment{Name: name, Text: name})
			},
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	Start(gctx, g, table, []Registration{mk("b"), mk("a"), mk("c")})

	if got := table.Names(); len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Fatalf("Names() = %v, want [b a c]", got)
	}
	waitFor(t, "all samples", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(started) == 3
	})
	cancel()
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
}

func TestRestyle_UsesCurrentTheme(t *testing.T) {
	b := testBinder()
	table := bar.NewTable(format.NameCPUTemp)
	reg := Bind(b, format.NameCPUTemp, time.Hour,
		func(context.Context) (float64, error) { return 40, nil },
		format.CPUTemp)

	if reg.Restyle(func(bar.Segment) {}) {
		t.Fatalf("Restyle before first sample reported ok")
	}
	reg.Sample(context.Background(), func(seg bar.Segment) { table.Set(seg, false) })
	<-table.Changed()

	b.Theme.Store(theme.Get("Dracula"))
	Restyle(table, []Registration{reg})

	slot, _ := table.Slot(format.NameCPUTemp)
	if want := theme.Get("Dracula").Info; slot.Segment.Foreground != want {
		t.Fatalf("Foreground = %q, want %q", slot.Segment.Foreground, want)
	}
	if slot.Segment.Text != "40°C" {
		t.Fatalf("Text = %q, want 40°C", slot.Segment.Text)
	}
}

func TestRestyle_NeverOverwritesNewerSample(t *testing.T) {
	b := testBinder()
	table := bar.NewTable(format.NameCPUTemp)
	var next atomic.Int32
	next.Store(40)
	reg := Bind(b, format.NameCPUTemp, time.Hour,
		func(context.Context) (float64, error) { return float64(next.Load()), nil },
		format.CPUTemp)
	emit := func(seg bar.Segment) { publish(table, seg) }
	reg.Sample(context.Background(), emit)

	sampled := make(chan struct{})
	restyled := make(chan struct{})
	go func() {
		reg.Restyle(func(seg bar.Segment) {
			next.Store(60)
			go func() {
				reg.Sample(context.Background(), emit)
				close(sampled)
			}()
			// Give the concurrent sample a chance to land first.
			time.Sleep(20 * time.Millisecond)
			table.Restyle(seg)
		})
		close(restyled)
	}()
	<-restyled
	<-sampled

	slot, _ := table.Slot(format.NameCPUTemp)
	if slot.Segment.Text != "60°C" {
		t.Fatalf("Text = %q, want 60°C from the newer sample", slot.Segment.Text)
	}
}

func TestServe_CancelledSampleIsDropped(t *testing.T) {
	var logs bytes.Buffer
	b := testBinder()
	b.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	table := bar.NewTable("garage")
	inFlight := make(chan struct{})
	reg := Bind(b, "garage", time.Hour,
		func(ctx context.Context) (float64, error) {
			close(inFlight)
			<-ctx.Done()
			return 0, ctx.Err()
		},
		func(v float64, err error, th theme.Theme) bar.Segment {
			if err != nil {
				return format.Placeholder("garage", th)
			}
			return bar.Segment{Name: "garage", Text: "ok"}
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Serve(ctx, table, reg)
		close(done)
	}()
	<-inFlight
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve did not stop after cancel")
	}

	slot, _ := table.Slot("garage")
	if format.IsPlaceholder(slot.Segment) || slot.ConsecutiveFailures != 0 {
		t.Fatalf("slot = %+v, want untouched after shutdown", slot)
	}
	if bytes.Contains(logs.Bytes(), []byte("sample failed")) {
		t.Fatalf("shutdown logged a failure: %s", logs.String())
	}
}
