package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const forecastFixture = `{
	"current": {"temperature_2m": 23.6},
	"daily": {
		"temperature_2m_max": [28.4],
		"temperature_2m_min": [17.5]
	}
}`

func TestCurrentMapsAndRounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("temperature_unit"); got != "fahrenheit" {
			t.Errorf("temperature_unit=%q, want fahrenheit", got)
		}
		w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 61.2181, -149.9003, time.Minute)
	w, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if w.CurrentF != 24 || w.HighF != 28 || w.LowF != 18 {
		t.Fatalf("weather=%+v, want 24/28/18", w)
	}
}

func TestCurrentServesFromCache(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 0, time.Hour)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.Current(ctx); err != nil {
			t.Fatalf("current %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Fatalf("upstream hit %d times within TTL, want 1", n)
	}
}

func TestCurrentUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 0, time.Minute)
	if _, err := c.Current(context.Background()); err == nil {
		t.Fatalf("expected error from failing upstream")
	}
}

func TestCurrentMissingDailyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current": {"temperature_2m": 10}, "daily": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 0, time.Minute)
	if _, err := c.Current(context.Background()); err == nil {
		t.Fatalf("expected error for missing daily temperatures")
	}
}
