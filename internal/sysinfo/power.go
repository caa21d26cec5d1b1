package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/distatus/battery"
)

const defaultSysfsRoot = "/sys/class/power_supply"

// ErrNoMains means no mains supply is exposed, so the power source is unknown.
var ErrNoMains = errors.New("no mains power supply found")

// Power is one battery sample. The power source and the charge are read
// independently so either can fail on its own.
type Power struct {
	OnAC      bool
	ACErr     error
	Charge    float64 // remaining capacity, 0..1
	ChargeErr error
}

// PowerReader samples the power source and battery charge.
type PowerReader struct {
	// SysfsRoot is the power_supply class directory; empty uses the system one.
	SysfsRoot string
	// Charge overrides the battery charge source, used by tests.
	Charge func() (float64, error)
}

// Read samples both values. It never blocks for long: both are local reads.
func (r PowerReader) Read(ctx context.Context) Power {
	var p Power
	p.OnAC, p.ACErr = r.onAC()
	if err := ctx.Err(); err != nil {
		p.ChargeErr = err
		return p
	}
	charge := r.Charge
	if charge == nil {
		charge = batteryCharge
	}
	p.Charge, p.ChargeErr = charge()
	return p
}

// onAC reports whether any mains supply is online.
func (r PowerReader) onAC() (bool, error) {
	root := r.SysfsRoot
	if root == "" {
		root = defaultSysfsRoot
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return false, fmt.Errorf("read power supplies: %w", err)
	}
	found := false
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		kind, err := readTrimmed(filepath.Join(dir, "type"))
		if err != nil || kind != "Mains" {
			continue
		}
		found = true
		online, err := readTrimmed(filepath.Join(dir, "online"))
		if err != nil {
			return false, fmt.Errorf("read %s online: %w", entry.Name(), err)
		}
		if online == "1" {
			return true, nil
		}
	}
	if !found {
		return false, ErrNoMains
	}
	return false, nil
}

// batteryCharge sums current and full energy over every battery.
func batteryCharge() (float64, error) {
	batteries, err := battery.GetAll()
	var current, full float64
	for _, b := range batteries {
		if b == nil || b.Full <= 0 {
			continue
		}
		current += b.Current
		full += b.Full
	}
	if full <= 0 {
		if err != nil {
			return 0, fmt.Errorf("read batteries: %w", err)
		}
		return 0, errors.New("no batteries found")
	}
	return current / full, nil
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
