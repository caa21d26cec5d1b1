// Package garage reads the garage door sensor's door.json endpoint.
package garage

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/glance/internal/feed"
)

// DefaultURL is the door sensor on the home network.
const DefaultURL = "http://10.0.0.11:8888/door.json"

// DoorState is the sensor's view of the door.
type DoorState string

const (
	Open    DoorState = "Open"
	Closed  DoorState = "Closed"
	Unknown DoorState = "Unknown"
)

// UnmarshalText accepts exactly the three states the sensor reports.
func (s *DoorState) UnmarshalText(text []byte) error {
	switch v := DoorState(text); v {
	case Open, Closed, Unknown:
		*s = v
		return nil
	default:
		return fmt.Errorf("unknown door state %q", string(text))
	}
}

// Door mirrors the door.json payload:
//
//	{"state": "Closed", "secs_since_notified": null, "open_for": null}
type Door struct {
	State             DoorState `json:"state"`
	SecsSinceNotified *uint64   `json:"secs_since_notified"`
	OpenFor           *uint64   `json:"open_for"`
}

// OpenDuration returns how long the door has been open, when the sensor knows.
func (d Door) OpenDuration() (time.Duration, bool) {
	if d.OpenFor == nil {
		return 0, false
	}
	return time.Duration(*d.OpenFor) * time.Second, true
}

// Parse decodes a door.json body.
func Parse(data []byte) (Door, error) {
	var raw struct {
		State *DoorState `json:"state"`
		Door
	}
	if err := feed.DecodeJSON(data, &raw); err != nil {
		return Door{}, err
	}
	if raw.State == nil {
		return Door{}, feed.Decodef("door state missing")
	}
	door := raw.Door
	door.State = *raw.State
	return door, nil
}

// Client polls the door sensor.
type Client struct {
	fetcher feed.Fetcher
	url     string
}

// NewClient builds a Client for url, falling back to DefaultURL.
func NewClient(fetcher feed.Fetcher, url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{fetcher: fetcher, url: url}
}

// State fetches and decodes the current door state. Errors are *feed.Error
// values of kind transport or decode.
func (c *Client) State(ctx context.Context) (Door, error) {
	body, err := c.fetcher.Fetch(ctx, c.url)
	if err != nil {
		return Door{}, err
	}
	return Parse(body)
}
