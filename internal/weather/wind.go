package weather

import "fmt"

// WindDirection is the observation feed's compass vocabulary: sixteen
// points plus CALM.
type WindDirection string

const (
	Calm WindDirection = "CALM"
	N    WindDirection = "N"
	NNE  WindDirection = "NNE"
	NE   WindDirection = "NE"
	ENE  WindDirection = "ENE"
	E    WindDirection = "E"
	ESE  WindDirection = "ESE"
	SE   WindDirection = "SE"
	SSE  WindDirection = "SSE"
	S    WindDirection = "S"
	SSW  WindDirection = "SSW"
	SW   WindDirection = "SW"
	WSW  WindDirection = "WSW"
	W    WindDirection = "W"
	WNW  WindDirection = "WNW"
	NW   WindDirection = "NW"
	NNW  WindDirection = "NNW"
)

// compassPoints is clockwise from north, 22.5° apart.
var compassPoints = []WindDirection{N, NNE, NE, ENE, E, ESE, SE, SSE, S, SSW, SW, WSW, W, WNW, NW, NNW}

// WindDirections returns all seventeen accepted values, CALM first.
func WindDirections() []WindDirection {
	out := make([]WindDirection, 0, len(compassPoints)+1)
	out = append(out, Calm)
	return append(out, compassPoints...)
}

// Valid reports whether d is one of the seventeen known values.
func (d WindDirection) Valid() bool {
	if d == Calm {
		return true
	}
	for _, p := range compassPoints {
		if d == p {
			return true
		}
	}
	return false
}

// Degrees returns the bearing the wind blows from. CALM has no bearing.
func (d WindDirection) Degrees() (float64, bool) {
	for i, p := range compassPoints {
		if d == p {
			return float64(i) * 22.5, true
		}
	}
	return 0, false
}

// UnmarshalText rejects anything outside the compass enumeration.
func (d *WindDirection) UnmarshalText(text []byte) error {
	v := WindDirection(text)
	if !v.Valid() {
		return fmt.Errorf("unknown wind direction %q", string(text))
	}
	*d = v
	return nil
}
