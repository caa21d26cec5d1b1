// Package format turns typed samples into bar segments. Every function is
// pure: the same sample and theme always give the same segment.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/glance/internal/bar"
	"github.com/five82/glance/internal/garage"
	"github.com/five82/glance/internal/sysinfo"
	"github.com/five82/glance/internal/theme"
	"github.com/five82/glance/internal/weather"
)

// Segment names, also the adapter identities in the bar table.
const (
	NameVolume  = "volume"
	NameBattery = "battery"
	NameWeather = "weather"
	NameCPUTemp = "cpu"
	NameGarage  = "garage"
	NameMemory  = "memory"
)

const errorText = "error"

// Placeholder is the segment shown when a sample could not be taken.
func Placeholder(name string, th theme.Theme) bar.Segment {
	return bar.Segment{
		Name:       name,
		Text:       errorText,
		Foreground: th.Danger,
		Padding:    1,
		Urgent:     true,
	}
}

// IsPlaceholder reports whether seg is an error placeholder.
func IsPlaceholder(seg bar.Segment) bool {
	return seg.Urgent && seg.Text == errorText
}

// percent rounds a 0..1 fraction to the nearest whole percent.
func percent(fraction float64) int {
	return int(math.Round(fraction * 100))
}

// Volume renders the mixer state. Muted shows only the muted icon; the
// icon otherwise follows the rounded percentage.
func Volume(v sysinfo.Volume, err error, th theme.Theme) bar.Segment {
	if err != nil {
		return Placeholder(NameVolume, th)
	}
	seg := bar.Segment{Name: NameVolume}
	if v.Muted {
		seg.Text = "🔇"
		return seg
	}
	pct := percent(v.Level)
	seg.Text = fmt.Sprintf("%s %d", volumeIcon(pct), pct)
	return seg
}

func volumeIcon(pct int) string {
	switch {
	case pct < 1:
		return "🔈"
	case pct < 50:
		return "🔉"
	default:
		return "🔊"
	}
}

// Battery renders the power source icon and charge. A failed power source
// read is an error; a failed charge read still shows the icon.
func Battery(p sysinfo.Power, th theme.Theme) bar.Segment {
	if p.ACErr != nil {
		return Placeholder(NameBattery, th)
	}
	icon := "🔋"
	if p.OnAC {
		icon = "🔌"
	}
	seg := bar.Segment{Name: NameBattery, Padding: 1}
	if p.ChargeErr != nil {
		seg.Text = icon
		return seg
	}
	seg.Text = fmt.Sprintf("%s %d%%", icon, percent(p.Charge))
	return seg
}

// CPUTemp renders a rounded Celsius reading.
func CPUTemp(celsius float64, err error, th theme.Theme) bar.Segment {
	if err != nil {
		return Placeholder(NameCPUTemp, th)
	}
	return bar.Segment{
		Name:       NameCPUTemp,
		Text:       fmt.Sprintf("%d°C", int(math.Round(celsius))),
		Foreground: th.Info,
		Padding:    1,
	}
}

// Weather renders temperature, humidity, wind and, when the station reports
// it, station pressure.
func Weather(obs weather.Observation, err error, th theme.Theme) bar.Segment {
	if err != nil {
		return Placeholder(NameWeather, th)
	}
	temp := int(math.Round(obs.AirTemp))
	parts := []string{
		fmt.Sprintf("%s %d°C", temperatureIcon(obs.AirTemp), temp),
	}
	if feels := int(math.Round(obs.ApparentTemp)); feels != temp {
		parts = append(parts, fmt.Sprintf("(%d°)", feels))
	}
	parts = append(parts, fmt.Sprintf("%d%%", obs.RelHumidity))
	parts = append(parts, wind(obs))
	if hpa, ok := obs.Pressure(); ok {
		parts = append(parts, fmt.Sprintf("%d hPa", int(math.Round(hpa))))
	}
	return bar.Segment{
		Name:    NameWeather,
		Text:    strings.Join(parts, " "),
		Padding: 1,
	}
}

func temperatureIcon(celsius float64) string {
	switch {
	case celsius < 5:
		return "🥶"
	case celsius < 30:
		return "🌡"
	default:
		return "🔥"
	}
}

// windArrows point where the wind is heading, indexed by the bearing it
// comes from in 45° steps starting at north.
var windArrows = []string{"↓", "↙", "←", "↖", "↑", "↗", "→", "↘"}

func wind(obs weather.Observation) string {
	deg, ok := obs.WindDir.Degrees()
	if !ok || obs.WindSpdKmh == 0 {
		return "calm"
	}
	arrow := windArrows[int(math.Round(deg/45))%len(windArrows)]
	text := fmt.Sprintf("%s%s %dkm/h", arrow, obs.WindDir, obs.WindSpdKmh)
	if obs.GustKmh > obs.WindSpdKmh {
		text += fmt.Sprintf(" (%d)", obs.GustKmh)
	}
	return text
}

// Door renders the garage door. An open door is highlighted with how long
// it has been open when the sensor knows.
func Door(d garage.Door, err error, th theme.Theme) bar.Segment {
	if err != nil {
		return Placeholder(NameGarage, th)
	}
	seg := bar.Segment{Name: NameGarage, Padding: 1}
	switch d.State {
	case garage.Open:
		seg.Text = "🚪 open"
		seg.Foreground = th.Warning
		if open, ok := d.OpenDuration(); ok {
			seg.Text += " " + shortDuration(open)
		}
	case garage.Closed:
		seg.Text = "🚗 closed"
		seg.Foreground = th.Muted
	default:
		seg.Text = "🚗 ?"
		seg.Foreground = th.Faint
	}
	return seg
}

func shortDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// Memory renders available and total memory on a filled background.
func Memory(m sysinfo.Memory, err error, th theme.Theme) bar.Segment {
	if err != nil {
		return Placeholder(NameMemory, th)
	}
	free := strings.TrimSuffix(humanize.IBytes(m.Available), " GiB")
	return bar.Segment{
		Name:       NameMemory,
		Text:       fmt.Sprintf("%s/%s RAM", free, humanize.IBytes(m.Total)),
		Background: th.SurfaceAlt,
		Foreground: th.Text,
		Padding:    1,
	}
}
