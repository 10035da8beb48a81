// internal/httpserver/routes_game.go
//
// Game routes:
//   - POST   /game/new          → create a session, returns gameId + token + board
//   - GET    /game/{id}         → current board
//   - POST   /game/{id}/letter  → type one letter
//   - DELETE /game/{id}/letter  → backspace
//   - POST   /game/{id}/guess   → submit the buffer, or the "guess" word in its place
//   - POST   /game/{id}/reset   → new secret, empty board
//
// Finished rounds are recorded in the results table (best effort).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/julekalender/internal/daily"
	"github.com/robalobadob/julekalender/internal/game"
	"github.com/robalobadob/julekalender/internal/store"
)

// ctxSessionKey carries the resolved session from withSession to handlers.
type ctxSessionKey struct{}

func (s *Server) mountGame() {
	s.r.Post("/game/new", s.handleNewGame)

	gameID := func(r *http.Request) string { return chi.URLParam(r, "id") }
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGameToken(gameID))
		r.Use(s.withSession(gameID))
		r.Get("/", s.handleGetGame)
		r.Post("/letter", s.handleAddLetter)
		r.Delete("/letter", s.handleDeleteLetter)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})
}

// withSession loads the session named by the URL or answers 404.
func (s *Server) withSession(idParam func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.deps.Store.Get(r.Context(), idParam(r))
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "not_found")
				return
			}
			if err != nil {
				log.Error().Err(err).Msg("load session")
				writeError(w, http.StatusInternalServerError, "load_failed")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, sess)))
		})
	}
}

func sessionFrom(r *http.Request) *game.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*game.Session)
	return sess
}

// newSession builds a Session wired to the server's collaborators.
func (s *Server) newSession() *game.Session {
	return game.NewSession(game.Config{
		Words:      s.deps.Words,
		Dictionary: s.deps.Dictionary,
		Today:      s.deps.Calendar.Today,
	})
}

// ------------------------------ handlers -----------------------------------

type newGameRes struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	Played bool          `json:"played"` // player already finished today's word
	Game   game.Snapshot `json:"game"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	player := s.ensurePlayerID(w, r)
	sess := s.newSession()
	if err := s.deps.Store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.deps.Auth.signGameToken(sess.ID(), player, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	played := false
	if day := sess.Day(); day != 0 && s.deps.Results != nil {
		if p, err := s.deps.Results.AlreadyPlayed(r.Context(), player, day); err == nil {
			played = p
		} else {
			log.Warn().Err(err).Msg("check already played")
		}
	}

	log.Info().Str("gameId", sess.ID()).Int("day", sess.Day()).Msg("game created")
	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.ID(), Token: tok, Played: played, Game: sess.Snapshot()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Snapshot())
}

type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleAddLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ch, size := utf8.DecodeRuneInString(req.Letter)
	if size == 0 || size != len(req.Letter) || !unicode.IsLetter(ch) {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	sess := sessionFrom(r)
	sess.AddLetter(ch)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteLetter(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.DeleteLetter()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

type guessReq struct {
	// Guess, when set, replaces the buffer before submitting.
	Guess string `json:"guess"`
}

type guessRes struct {
	Result game.SubmitResult `json:"result"`
	Game   game.Snapshot     `json:"game"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	for _, ch := range req.Guess {
		if !unicode.IsLetter(ch) {
			writeError(w, http.StatusBadRequest, "invalid_letter")
			return
		}
	}

	sess := sessionFrom(r)
	var res game.SubmitResult
	if req.Guess != "" {
		res = sess.SubmitWord(r.Context(), req.Guess)
	} else {
		res = sess.SubmitGuess(r.Context())
	}
	if res.Outcome != nil {
		s.recordResult(r.Context(), sess.ID(), playerFromContext(r.Context()), *res.Outcome)
	}
	writeJSON(w, http.StatusOK, guessRes{Result: res, Game: sess.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Reset()
	log.Info().Str("gameId", sess.ID()).Int("day", sess.Day()).Msg("game reset")
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// recordResult stores a finished round. Failures are logged, never returned.
func (s *Server) recordResult(ctx context.Context, gameID, player string, o game.Outcome) {
	if s.deps.Results == nil {
		return
	}
	err := s.deps.Results.InsertResult(ctx, daily.Result{
		GameID:   gameID,
		Round:    o.Round,
		PlayerID: player,
		Day:      o.Day,
		Word:     o.Word,
		Won:      o.Won,
		Guesses:  o.Guesses,
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Int("round", o.Round).Msg("insert result")
	}
}
