// internal/httpserver/server.go
//
// HTTP server wiring for the calendar word game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/calendar", "/stats/{day}".
//   - Game endpoints: POST /game/new, then /game/{id}/* guarded by a game token.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled so the anonymous player cookie works.
//   - Sessions live in the store; only finished results are written to the database.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/julekalender/internal/daily"
	"github.com/robalobadob/julekalender/internal/game"
	"github.com/robalobadob/julekalender/internal/store"
	"github.com/robalobadob/julekalender/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Store    store.Store
	Results  *daily.Store // nil disables result recording and /stats
	Words    *words.Source
	Calendar daily.Calendar
	// Dictionary checks guesses missing from the word list. nil: list only.
	Dictionary   game.Dictionary
	Auth         AuthConfig
	ClientOrigin string
}

// Server bundles router and dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) *Server {
	if deps.ClientOrigin == "" {
		deps.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), deps: deps}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog request log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(deps.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"julekalender","endpoints":["/health","/calendar","POST /game/new","/game/{id}","/stats/{day}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/calendar", s.handleCalendar)

	s.mountGame()
	s.mountStats()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (used by main for graceful shutdown and by tests).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ calendar -----------------------------------

type calendarRes struct {
	Day    int  `json:"day"` // 0 outside the window
	Active bool `json:"active"`
	Month  int  `json:"month"`
	Days   int  `json:"days"`
	Words  int  `json:"words"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	cal := s.deps.Calendar
	writeJSON(w, http.StatusOK, calendarRes{
		Day:    cal.Today(),
		Active: cal.Active(),
		Month:  int(cal.Window.Month),
		Days:   cal.Window.Days,
		Words:  s.deps.Words.Len(),
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
