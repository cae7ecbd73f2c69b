package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/coinop-logan/personal-finance-display/internal/core"
	"github.com/coinop-logan/personal-finance-display/internal/ledger"
)

// The delete path must be exactly /api/entry/ followed by decimal digits;
// anything else is an unknown endpoint.
var entryIDPattern = regexp.MustCompile(`^/api/entry/([0-9]+)$`)

// handleAPI routes everything under /api/. Routing is deliberately
// manual: an unmatched method+path combination is a 404, never a 405.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if r.Method == http.MethodDelete {
		if m := entryIDPattern.FindStringSubmatch(path); m != nil {
			s.handleDeleteEntry(w, r, m[1])
			return
		}
	}

	switch {
	case r.Method == http.MethodGet && path == "/api/data":
		s.handleListData(w, r)
	case r.Method == http.MethodGet && path == "/api/weather" && s.weather != nil:
		s.handleWeather(w, r)
	case r.Method == http.MethodPost && path == "/api/entry":
		s.handleCreateEntry(w, r)
	default:
		writeError(w, http.StatusNotFound, "API endpoint not found")
	}
}

// handleListData returns the full collection as a JSON array. A missing
// or corrupt store document reads as an empty array, never a failure.
func (s *Server) handleListData(w http.ResponseWriter, r *http.Request) {
	c, err := s.ledger.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List entries error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read entries")
		return
	}
	if c == nil {
		c = core.Collection{}
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := core.ParseNewEntry(fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.ledger.Append(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Entry append error", "error", err, "date", entry.Date)
		writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	slog.InfoContext(r.Context(), "Entry created", "id", stored.ID, "date", stored.Date)
	writeJSON(w, http.StatusOK, apiResponse{OK: true})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		// Digits that overflow int cannot name an existing entry.
		writeJSON(w, http.StatusNotFound, apiResponse{OK: false})
		return
	}

	switch err := s.ledger.Delete(r.Context(), id); {
	case errors.Is(err, ledger.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiResponse{OK: false})
	case err != nil:
		slog.ErrorContext(r.Context(), "Entry delete error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete entry")
	default:
		slog.InfoContext(r.Context(), "Entry deleted", "id", id)
		writeJSON(w, http.StatusOK, apiResponse{OK: true})
	}
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	wx, err := s.weather.Current(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "Weather fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "weather unavailable")
		return
	}
	writeJSON(w, http.StatusOK, wx)
}
