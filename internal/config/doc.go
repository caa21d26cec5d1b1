// Package config loads glance's settings from ~/.config/glance/config.toml.
//
// Every setting is optional. A missing file, an empty string or a zero
// duration all fall back to the built-in defaults, so a fresh install runs
// with no configuration at all:
//
//	output = "tui"            # tui, plain, i3bar or pango
//	theme = "Classic"
//	log_level = "info"
//	log_file = "~/.local/state/glance/glance.log"
//	fetch_timeout = "10s"
//
//	[garage]
//	url = "http://10.0.0.11:8888/door.json"
//	every = "30s"
//
//	[weather]
//	url = "http://reg.bom.gov.au/fwo/IDV60901/IDV60901.95936.json"
//	every = "5m"
//
//	[battery]
//	every = "30s"
//	sysfs = "/sys/class/power_supply"
//
//	[cpu]
//	every = "5s"
//	sensor = ""               # gopsutil sensor key; empty picks the package sensor
//
//	[memory]
//	every = "15s"
//
//	[volume]
//	poll = "2s"               # only used when pactl subscribe is unavailable
//
// Durations are Go duration strings. Which segments appear is decided on the
// command line, not here.
package config
