package sysinfo

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakePactl struct {
	mu     sync.Mutex
	muted  string
	volume string
	err    error
}

func (f *fakePactl) set(muted, volume string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted, f.volume = muted, volume
}

func (f *fakePactl) output(_ context.Context, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	switch args[0] {
	case "get-sink-mute":
		return []byte("Mute: " + f.muted + "\n"), nil
	case "get-sink-volume":
		return []byte("Volume: front-left: " + f.volume + ",   front-right: " + f.volume + "\n        balance 0.00\n"), nil
	}
	return nil, errors.New("unexpected args " + strings.Join(args, " "))
}

func TestMixer_Read(t *testing.T) {
	f := &fakePactl{muted: "no", volume: "32768 /  50% / -18.06 dB"}
	m := Mixer{Output: f.output}

	v, err := m.Read(context.Background())
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if v.Muted || v.Level != 0.5 {
		t.Fatalf("Read = %+v, want unmuted 0.5", v)
	}

	f.set("yes", "0 /   0% / -inf dB")
	v, err = m.Read(context.Background())
	if err != nil || !v.Muted || v.Level != 0 {
		t.Fatalf("Read = %+v, %v; want muted 0", v, err)
	}
}

func TestMixer_ReadErrors(t *testing.T) {
	f := &fakePactl{err: errors.New("exec: pactl not found")}
	if _, err := (Mixer{Output: f.output}).Read(context.Background()); err == nil {
		t.Fatalf("Read returned nil error when pactl fails")
	}
	f = &fakePactl{muted: "maybe", volume: "32768 / 50% / 0 dB"}
	if _, err := (Mixer{Output: f.output}).Read(context.Background()); err == nil {
		t.Fatalf("Read returned nil error for bad mute output")
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		out  string
		want float64
	}{
		{"Volume: front-left: 65536 / 100% / 0.00 dB", 1},
		{"Volume: mono: 19661 /  30% / -31.37 dB", 19661.0 / 65536},
		{"Volume: front-left: 72090 / 110% / 2.48 dB", 72090.0 / 65536},
	}
	for _, tt := range tests {
		got, err := parseVolume(tt.out)
		if err != nil || got != tt.want {
			t.Fatalf("parseVolume(%q) = %v, %v; want %v", tt.out, got, err, tt.want)
		}
	}
	if _, err := parseVolume("Volume: n/a"); err == nil {
		t.Fatalf("parseVolume returned nil error for garbage")
	}
}

func TestMixer_WatchFollowsSinkEvents(t *testing.T) {
	f := &fakePactl{muted: "no", volume: "32768 / 50% / -18.06 dB"}
	events, writer := io.Pipe()

	m := Mixer{
		Output:    f.output,
		Subscribe: func(context.Context) (io.ReadCloser, error) { return events, nil },
		Poll:      time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Volume, 8)
	go m.Watch(ctx, func(v Volume, err error) {
		if err == nil {
			got <- v
		}
	})

	if v := <-got; v.Level != 0.5 {
		t.Fatalf("initial Level = %v, want 0.5", v.Level)
	}

	f.set("yes", "32768 / 50% / -18.06 dB")
	_, _ = io.WriteString(writer, "Event 'change' on sink-input #12\n")
	_, _ = io.WriteString(writer, "Event 'change' on sink #56\n")

	select {
	case v := <-got:
		if !v.Muted {
			t.Fatalf("after sink event Muted = false, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no update after sink change event")
	}

	select {
	case v := <-got:
		t.Fatalf("unexpected extra update %+v (sink-input events must be ignored)", v)
	default:
	}
	_ = writer.Close()
}

func TestMixer_WatchFallsBackToPolling(t *testing.T) {
	f := &fakePactl{muted: "no", volume: "65536 / 100% / 0 dB"}
	m := Mixer{
		Output:    f.output,
		Subscribe: func(context.Context) (io.ReadCloser, error) { return nil, errors.New("no pactl") },
		Poll:      10 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	calls := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Watch(ctx, func(Volume, error) {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("calls = %d, want polling to continue", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done
}
