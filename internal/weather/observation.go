package weather

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/five82/glance/internal/feed"
)

const aifsLayout = "20060102150405"

// Observation is one station reading from the observations feed.
type Observation struct {
	SortOrder         uint32
	Name              string
	HistoryProduct    string
	LocalDateTime     string // "11/01:30pm"
	LocalDateTimeFull string // "20180811133000"
	AIFSTimeUTC       string // "20180811033000"
	Lat               float64
	Lon               float64
	ApparentTemp      float64
	DeltaT            float64
	GustKmh           uint32
	GustKt            uint32
	AirTemp           float64
	DewPoint          float64

	// Pressure readings depend on station capability; nil means no data.
	Press    *float64
	PressQNH *float64
	PressMSL *float64

	PressTend   string
	RainTrace   string // rain since 9am; upstream sends sentinels like "-"
	RelHumidity uint32
	WindDir     WindDirection
	WindSpdKmh  uint32
	WindSpdKt   uint32
}

// ObservedAt parses the UTC timestamp, returning the zero time when absent
// or malformed.
func (o Observation) ObservedAt() time.Time {
	t, err := time.ParseInLocation(aifsLayout, o.AIFSTimeUTC, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Pressure returns the station pressure from press. The QNH and MSL
// readings are never substituted for it.
func (o Observation) Pressure() (float64, bool) {
	if o.Press == nil {
		return 0, false
	}
	return *o.Press, true
}

type envelope struct {
	Observations *struct {
		Data []json.RawMessage `json:"data"`
	} `json:"observations"`
}

// rawObservation uses pointers so absent required fields can be detected.
type rawObservation struct {
	SortOrder         *uint32        `json:"sort_order"`
	Name              *string        `json:"name"`
	HistoryProduct    *string        `json:"history_product"`
	LocalDateTime     *string        `json:"local_date_time"`
	LocalDateTimeFull *string        `json:"local_date_time_full"`
	AIFSTimeUTC       *string        `json:"aifstime_utc"`
	Lat               *float64       `json:"lat"`
	Lon               *float64       `json:"lon"`
	ApparentT         *float64       `json:"apparent_t"`
	DeltaT            *float64       `json:"delta_t"`
	GustKmh           *uint32        `json:"gust_kmh"`
	GustKt            *uint32        `json:"gust_kt"`
	AirTemp           *float64       `json:"air_temp"`
	DewPt             *float64       `json:"dewpt"`
	Press             *float64       `json:"press"`
	PressQNH          *float64       `json:"press_qnh"`
	PressMSL          *float64       `json:"press_msl"`
	PressTend         *string        `json:"press_tend"`
	RainTrace         *string        `json:"rain_trace"`
	RelHum            *uint32        `json:"rel_hum"`
	WindDir           *WindDirection `json:"wind_dir"`
	WindSpdKmh        *uint32        `json:"wind_spd_kmh"`
	WindSpdKt         *uint32        `json:"wind_spd_kt"`
}

func (r rawObservation) missing() []string {
	var out []string
	check := func(name string, present bool) {
		if !present {
			out = append(out, name)
		}
	}
	check("sort_order", r.SortOrder != nil)
	check("name", r.Name != nil)
	check("history_product", r.HistoryProduct != nil)
	check("local_date_time", r.LocalDateTime != nil)
	check("local_date_time_full", r.LocalDateTimeFull != nil)
	check("aifstime_utc", r.AIFSTimeUTC != nil)
	check("lat", r.Lat != nil)
	check("lon", r.Lon != nil)
	check("apparent_t", r.ApparentT != nil)
	check("delta_t", r.DeltaT != nil)
	check("gust_kmh", r.GustKmh != nil)
	check("gust_kt", r.GustKt != nil)
	check("air_temp", r.AirTemp != nil)
	check("dewpt", r.DewPt != nil)
	check("rain_trace", r.RainTrace != nil)
	check("rel_hum", r.RelHum != nil)
	check("wind_dir", r.WindDir != nil)
	check("wind_spd_kmh", r.WindSpdKmh != nil)
	check("wind_spd_kt", r.WindSpdKt != nil)
	return out
}

func (r rawObservation) observation() Observation {
	obs := Observation{
		SortOrder:         *r.SortOrder,
		Name:              *r.Name,
		HistoryProduct:    *r.HistoryProduct,
		LocalDateTime:     *r.LocalDateTime,
		LocalDateTimeFull: *r.LocalDateTimeFull,
		AIFSTimeUTC:       *r.AIFSTimeUTC,
		Lat:               *r.Lat,
		Lon:               *r.Lon,
		ApparentTemp:      *r.ApparentT,
		DeltaT:            *r.DeltaT,
		GustKmh:           *r.GustKmh,
		GustKt:            *r.GustKt,
		AirTemp:           *r.AirTemp,
		DewPoint:          *r.DewPt,
		Press:             r.Press,
		PressQNH:          r.PressQNH,
		PressMSL:          r.PressMSL,
		RainTrace:         *r.RainTrace,
		RelHumidity:       *r.RelHum,
		WindDir:           *r.WindDir,
		WindSpdKmh:        *r.WindSpdKmh,
		WindSpdKt:         *r.WindSpdKt,
	}
	if r.PressTend != nil {
		obs.PressTend = *r.PressTend
	}
	return obs
}

func parseRows(data []byte) ([]json.RawMessage, error) {
	var env envelope
	if err := feed.DecodeJSON(data, &env); err != nil {
		return nil, err
	}
	if env.Observations == nil {
		return nil, feed.Decodef("observations missing")
	}
	return env.Observations.Data, nil
}

func parseRow(row json.RawMessage, index int) (Observation, error) {
	var raw rawObservation
	if err := feed.DecodeJSON(row, &raw); err != nil {
		return Observation{}, err
	}
	if missing := raw.missing(); len(missing) > 0 {
		return Observation{}, feed.Decodef("row %d missing %s", index, strings.Join(missing, ", "))
	}
	return raw.observation(), nil
}

// ParseCurrent decodes only the first row of an observations payload. An
// empty data array is a decode error, never a zero Observation.
func ParseCurrent(data []byte) (Observation, error) {
	rows, err := parseRows(data)
	if err != nil {
		return Observation{}, err
	}
	if len(rows) == 0 {
		return Observation{}, feed.Decodef("first row missing")
	}
	return parseRow(rows[0], 0)
}

// Parse decodes every row of an observations payload, in upstream order.
func Parse(data []byte) ([]Observation, error) {
	rows, err := parseRows(data)
	if err != nil {
		return nil, err
	}
	out := make([]Observation, 0, len(rows))
	for i, row := range rows {
		obs, err := parseRow(row, i)
		if err != nil {
			return nil, err
		}
		out = append(out, obs)
	}
	return out, nil
}
