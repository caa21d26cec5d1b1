package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/glance/internal/bar"
	"github.com/five82/glance/internal/config"
	"github.com/five82/glance/internal/feed"
	"github.com/five82/glance/internal/format"
	"github.com/five82/glance/internal/garage"
	"github.com/five82/glance/internal/logging"
	"github.com/five82/glance/internal/prefs"
	"github.com/five82/glance/internal/sysinfo"
	"github.com/five82/glance/internal/theme"
	"github.com/five82/glance/internal/ui"
	"github.com/five82/glance/internal/weather"
)

// OutputTUI selects the interactive terminal UI instead of a line renderer.
const OutputTUI = "tui"

// Segments selects which adapters appear on the bar.
type Segments struct {
	Audio   bool
	Battery bool
	Weather bool
	CPU     bool
	Garage  bool
	Memory  bool
}

// Options configure a glance run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/glance/prefs.toml
	Output     string // overrides the config file when set
	Segments   Segments

	Stdout io.Writer
	Stderr io.Writer
}

// Run composes the bar and renders it until ctx is cancelled or the TUI
// quits. Feed and sensor failures never end the run.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	output := cfg.Output
	if strings.TrimSpace(opts.Output) != "" {
		output = opts.Output
	}
	output = strings.ToLower(strings.TrimSpace(output))

	var renderer bar.Renderer
	logOut := stderr
	if output == OutputTUI {
		logFile, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer logFile.Close()
		logOut = logFile
	} else {
		renderer, err = bar.NewRenderer(output, stdout)
		if err != nil {
			return err
		}
	}
	logger := logging.New(logOut, level)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "error", err)
	}
	themeName := userPrefs.Theme
	if cfg.Theme != "" {
		themeName = cfg.Theme
	}
	current := theme.NewCurrent(theme.Get(themeName))

	binder := Binder{Theme: current, Logger: logger}
	regs := Registrations(cfg, opts.Segments, binder, feed.NewClient(cfg.FetchTimeout))
	table := bar.NewTable()

	logger.Info("starting",
		"output", output,
		"segments", registrationNames(regs),
		"theme", current.Load().Name,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	Start(gctx, g, table, regs)

	if output == OutputTUI {
		g.Go(func() error {
			defer cancel()
			return ui.Run(gctx, ui.Options{
				Table:     table,
				Theme:     current,
				PrefsPath: opts.PrefsPath,
				LogFile:   cfg.LogFile,
				Logger:    logger,
				OnTheme:   func() { Restyle(table, regs) },
			})
		})
	} else {
		g.Go(func() error {
			return bar.Stream(gctx, table, renderer, stdout)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stopped")
	return nil
}

// Registrations builds the enabled adapters in bar order: audio, battery,
// weather, CPU temperature, garage, memory.
func Registrations(cfg config.Config, seg Segments, b Binder, fetcher feed.Fetcher) []Registration {
	var regs []Registration
	if seg.Audio {
		mixer := sysinfo.Mixer{Poll: cfg.Volume.Every, Logger: b.Logger}
		regs = append(regs, BindWatch(b, format.NameVolume, mixer.Watch, format.Volume))
	}
	if seg.Battery {
		power := sysinfo.PowerReader{SysfsRoot: cfg.Battery.SysfsRoot}
		regs = append(regs, Bind(b, format.NameBattery, cfg.Battery.Every, samplePower(power), renderPower))
	}
	if seg.Weather {
		client := weather.NewClient(fetcher, cfg.Weather.URL)
		regs = append(regs, Bind(b, format.NameWeather, cfg.Weather.Every, client.CurrentConditions, format.Weather))
	}
	if seg.CPU {
		cpu := sysinfo.CPUTemp{Sensor: cfg.CPU.Sensor}
		regs = append(regs, Bind(b, format.NameCPUTemp, cfg.CPU.Every, cpu.Celsius, format.CPUTemp))
	}
	if seg.Garage {
		client := garage.NewClient(fetcher, cfg.Garage.URL)
		regs = append(regs, Bind(b, format.NameGarage, cfg.Garage.Every, client.State, format.Door))
	}
	if seg.Memory {
		regs = append(regs, Bind(b, format.NameMemory, cfg.Memory.Every, sysinfo.ReadMemory, format.Memory))
	}
	return regs
}

// samplePower reports both power read failures for logging while the
// formatter still decides from the sample alone.
func samplePower(r sysinfo.PowerReader) func(context.Context) (sysinfo.Power, error) {
	return func(ctx context.Context) (sysinfo.Power, error) {
		p := r.Read(ctx)
		return p, errors.Join(p.ACErr, p.ChargeErr)
	}
}

func renderPower(p sysinfo.Power, _ error, th theme.Theme) bar.Segment {
	return format.Battery(p, th)
}

func registrationNames(regs []Registration) []string {
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.Name
	}
	return names
}
