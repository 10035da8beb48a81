// internal/httpserver/routes_stats.go
//
// GET /stats/{day} → plays, wins and the guess distribution for a calendar day.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func (s *Server) mountStats() {
	s.r.Get("/stats/{day}", s.handleStats)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.deps.Results == nil {
		writeError(w, http.StatusServiceUnavailable, "stats_disabled")
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 0 || day > s.deps.Calendar.Window.Days {
		writeError(w, http.StatusBadRequest, "invalid_day")
		return
	}
	st, err := s.deps.Results.DayStats(r.Context(), day)
	if err != nil {
		log.Error().Err(err).Int("day", day).Msg("day stats")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
