// Package weather reads outdoor conditions for the display's weather
// widget from an Open-Meteo compatible forecast endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Weather is the widget payload: rounded Fahrenheit readings.
type Weather struct {
	CurrentF int `json:"currentF"`
	HighF    int `json:"highF"`
	LowF     int `json:"lowF"`
}

// Client fetches the forecast on demand and serves it from a single-value
// TTL cache between refreshes.
type Client struct {
	baseURL    string
	latitude   float64
	longitude  float64
	ttl        time.Duration
	httpClient *http.Client

	mu        sync.Mutex
	cached    Weather
	expiresAt time.Time
}

func NewClient(baseURL string, latitude, longitude float64, ttl time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		latitude:   latitude,
		longitude:  longitude,
		ttl:        ttl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current returns the cached reading, refreshing it from the upstream
// when the TTL has lapsed.
func (c *Client) Current(ctx context.Context) (Weather, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.expiresAt) {
		return c.cached, nil
	}

	w, err := c.fetch(ctx)
	if err != nil {
		return Weather{}, err
	}

	c.cached = w
	c.expiresAt = time.Now().Add(c.ttl)
	return w, nil
}

type forecastResponse struct {
	Current struct {
		Temperature2m float64 `json:"temperature_2m"`
	} `json:"current"`
	Daily struct {
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (c *Client) fetch(ctx context.Context) (Weather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m")
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "personal-finance-display/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("forecast endpoint returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Weather{}, fmt.Errorf("read body: %w", err)
	}

	var fc forecastResponse
	if err := json.Unmarshal(body, &fc); err != nil {
		return Weather{}, fmt.Errorf("decode forecast: %w", err)
	}
	if len(fc.Daily.Temperature2mMax) == 0 || len(fc.Daily.Temperature2mMin) == 0 {
		return Weather{}, fmt.Errorf("forecast response missing daily temperatures")
	}

	return Weather{
		CurrentF: int(math.Round(fc.Current.Temperature2m)),
		HighF:    int(math.Round(fc.Daily.Temperature2mMax[0])),
		LowF:     int(math.Round(fc.Daily.Temperature2mMin[0])),
	}, nil
}
