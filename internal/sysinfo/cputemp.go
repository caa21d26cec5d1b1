package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// preferredSensors are tried in order when no sensor is configured.
var preferredSensors = []string{
	"coretemp_package_id_0",
	"k10temp_tctl",
	"zenpower_tdie",
	"cpu_thermal",
	"acpitz",
}

// CPUTemp reads the CPU package temperature.
type CPUTemp struct {
	// Sensor is the gopsutil sensor key to read; empty picks a known CPU sensor.
	Sensor string
	// Temperatures overrides the sensor source, used by tests.
	Temperatures func(ctx context.Context) ([]sensors.TemperatureStat, error)
}

// Celsius returns the current reading in degrees Celsius.
func (c CPUTemp) Celsius(ctx context.Context) (float64, error) {
	read := c.Temperatures
	if read == nil {
		read = sensors.TemperaturesWithContext
	}
	// gopsutil reports per-sensor failures as warnings alongside partial data.
	temps, err := read(ctx)
	if len(temps) == 0 {
		if err == nil {
			err = errors.New("no temperature sensors")
		}
		return 0, fmt.Errorf("read sensors: %w", err)
	}
	byKey := make(map[string]float64, len(temps))
	for _, t := range temps {
		byKey[strings.ToLower(t.SensorKey)] = t.Temperature
	}

	if c.Sensor != "" {
		v, ok := byKey[strings.ToLower(c.Sensor)]
		if !ok {
			return 0, fmt.Errorf("sensor %q not found", c.Sensor)
		}
		return v, nil
	}
	for _, key := range preferredSensors {
		if v, ok := byKey[key]; ok {
			return v, nil
		}
	}
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "coretemp") || strings.Contains(key, "k10temp") || strings.Contains(key, "cpu") {
			return t.Temperature, nil
		}
	}
	return 0, errors.New("no cpu temperature sensor")
}
