package sysinfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// normVolume is PulseAudio's PA_VOLUME_NORM, i.e. 100%.
const normVolume = 65536

const (
	defaultMixerCommand = "pactl"
	defaultSink         = "@DEFAULT_SINK@"
	defaultMixerPoll    = 2 * time.Second
)

var (
	volumeRe    = regexp.MustCompile(`:\s*(\d+)\s*/\s*\d+%`)
	sinkEventRe = regexp.MustCompile(`on (sink|server) #`)
)

// Volume is the default sink's mixer state.
type Volume struct {
	Muted bool
	Level float64 // linear, 1.0 = 100%
}

// Mixer reads the default PulseAudio/PipeWire sink through pactl.
type Mixer struct {
	// Command is the pactl binary; empty uses "pactl" from PATH.
	Command string
	// Poll is the fallback interval when change events are unavailable.
	Poll   time.Duration
	Logger *slog.Logger

	// Output and Subscribe override process execution, used by tests.
	Output    func(ctx context.Context, args ...string) ([]byte, error)
	Subscribe func(ctx context.Context) (io.ReadCloser, error)
}

// Read returns the current mute flag and volume.
func (m Mixer) Read(ctx context.Context) (Volume, error) {
	muteOut, err := m.output(ctx, "get-sink-mute", defaultSink)
	if err != nil {
		return Volume{}, fmt.Errorf("read mute: %w", err)
	}
	volOut, err := m.output(ctx, "get-sink-volume", defaultSink)
	if err != nil {
		return Volume{}, fmt.Errorf("read volume: %w", err)
	}
	muted, err := parseMute(string(muteOut))
	if err != nil {
		return Volume{}, err
	}
	level, err := parseVolume(string(volOut))
	if err != nil {
		return Volume{}, err
	}
	return Volume{Muted: muted, Level: level}, nil
}

// Watch calls fn with the current state, then again after every sink
// change event until ctx is done. When pactl cannot subscribe, it falls
// back to polling every Poll.
func (m Mixer) Watch(ctx context.Context, fn func(Volume, error)) {
	fn(m.Read(ctx))

	if err := m.follow(ctx, fn); err != nil && ctx.Err() == nil {
		m.logger().Warn("mixer events unavailable, polling", "error", err)
	}
	if ctx.Err() != nil {
		return
	}

	poll := m.Poll
	if poll <= 0 {
		poll = defaultMixerPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(m.Read(ctx))
		}
	}
}

// follow blocks reading subscription events until the stream ends.
func (m Mixer) follow(ctx context.Context, fn func(Volume, error)) error {
	subscribe := m.Subscribe
	if subscribe == nil {
		subscribe = m.execSubscribe
	}
	stream, err := subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer func() { _ = stream.Close() }()

	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		if sinkEventRe.MatchString(scanner.Text()) {
			fn(m.Read(ctx))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return errors.New("event stream closed")
}

func (m Mixer) output(ctx context.Context, args ...string) ([]byte, error) {
	if m.Output != nil {
		return m.Output(ctx, args...)
	}
	return exec.CommandContext(ctx, m.command(), args...).Output()
}

func (m Mixer) execSubscribe(ctx context.Context) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, m.command(), "subscribe")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &cmdStream{ReadCloser: stdout, cmd: cmd}, nil
}

func (m Mixer) command() string {
	if m.Command != "" {
		return m.Command
	}
	return defaultMixerCommand
}

func (m Mixer) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

type cmdStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (s *cmdStream) Close() error {
	_ = s.ReadCloser.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.cmd.Wait()
}

// parseMute reads "Mute: yes" / "Mute: no".
func parseMute(out string) (bool, error) {
	_, value, ok := strings.Cut(strings.TrimSpace(out), ":")
	if !ok {
		return false, fmt.Errorf("unexpected mute output %q", out)
	}
	switch strings.TrimSpace(value) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected mute output %q", out)
	}
}

// parseVolume reads the first channel of
// "Volume: front-left: 32768 /  50% / -18.06 dB, ...".
func parseVolume(out string) (float64, error) {
	match := volumeRe.FindStringSubmatch(out)
	if match == nil {
		return 0, fmt.Errorf("unexpected volume output %q", strings.TrimSpace(out))
	}
	raw, err := strconv.ParseUint(match[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse volume %q: %w", match[1], err)
	}
	return float64(raw) / normVolume, nil
}
