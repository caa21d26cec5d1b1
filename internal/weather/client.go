package weather

import (
	"context"

	"github.com/five82/glance/internal/feed"
)

// DefaultURL is the Bureau of Meteorology feed for the home station.
const DefaultURL = "http://reg.bom.gov.au/fwo/IDV60901/IDV60901.95936.json"

// Client reads a station's observation feed.
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

// CurrentConditions returns the station's most recent reading, which
// upstream orders first.
func (c *Client) CurrentConditions(ctx context.Context) (Observation, error) {
	body, err := c.fetcher.Fetch(ctx, c.url)
	if err != nil {
		return Observation{}, err
	}
	return ParseCurrent(body)
}

// Observations returns every reading in the feed, newest first.
func (c *Client) Observations(ctx context.Context) ([]Observation, error) {
	body, err := c.fetcher.Fetch(ctx, c.url)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}
