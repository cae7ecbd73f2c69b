// Package http exposes the entry collection over a small JSON API and
// serves the bundled single-page app with client-side-routing fallback.
package http

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/coinop-logan/personal-finance-display/internal/ledger"
	"github.com/coinop-logan/personal-finance-display/internal/middleware/security"
	"github.com/coinop-logan/personal-finance-display/internal/middleware/trace"
	"github.com/coinop-logan/personal-finance-display/internal/weather"
)

// WeatherProvider supplies the weather widget payload. A nil provider
// turns the endpoint into an unknown route.
type WeatherProvider interface {
	Current(ctx context.Context) (weather.Weather, error)
}

type Server struct {
	http.Server
	ledger  *ledger.Service
	weather WeatherProvider
	site    fs.FS
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server bound to addr.
func NewServer(addr string, svc *ledger.Service, wp WeatherProvider, site fs.FS) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16, // 64KB
		},
		ledger:  svc,
		weather: wp,
		site:    site,
	}

	mux.HandleFunc("/api/", s.handleAPI)
	mux.HandleFunc("/", s.handleSite)

	headers := security.Middleware(security.DefaultHeadersConfig())
	s.Handler = trace.Middleware(headers(mux))

	return s
}
