// internal/game/session.go
//
// Session: one player's board for the calendar word game.
// Responsibilities:
//   - Own the secret, the in-progress guess buffer, the row grid and the hints.
//   - Validate submissions (length, word list, dictionary) without consuming a turn.
//   - Track state transitions: playing → won/lost.
//
// Concurrency:
//   - Every exported method takes the session mutex. SubmitGuess keeps it for
//     the whole dictionary round-trip, so typing cannot interleave with a
//     submission and submissions are serialized.

package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"
)

// WordSource supplies secrets and the known word list.
type WordSource interface {
	WordOfDay(day int) string
	Contains(word string) bool
}

// Dictionary is the external word check. Implementations must fail open:
// any lookup failure answers true.
type Dictionary interface {
	IsValidWord(ctx context.Context, word string) bool
}

// Config wires a Session to its collaborators.
type Config struct {
	Words WordSource
	// Dictionary may be nil, in which case only listed words are accepted.
	Dictionary Dictionary
	// Today returns the calendar day index, 0 outside the window.
	Today func() int
	Now   func() time.Time
}

// Session is a single game. The zero value is not usable; call NewSession.
type Session struct {
	mu  sync.Mutex
	cfg Config

	id         string
	day        int
	secret     []rune
	buffer     []rune
	currentRow int
	state      GameState
	rows       [][]Tile
	hints      Hints
	// round counts boards played in this session, starting at 1.
	round int

	// touched is read without mu so the store's sweeper never waits on a
	// submission in flight.
	touched atomic.Int64
}

// NewSession creates a session and draws its first secret.
func NewSession(cfg Config) *Session {
	if cfg.Today == nil {
		cfg.Today = func() int { return 0 }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{cfg: cfg, id: randomID(), round: 1}
	s.reset()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// WordLength is the rune length of the current secret.
func (s *Session) WordLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.secret)
}

// State returns the lifecycle state.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsGameOver reports whether the session reached won or lost.
func (s *Session) IsGameOver() bool { return s.State().Terminal() }

// Day returns the calendar day the secret was drawn for (0 = random word).
func (s *Session) Day() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// LastActivity is the time of the last mutating call.
func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.touched.Load())
}

// AddLetter appends r (uppercased) to the guess buffer.
// No-op when the buffer is full or the game is over.
func (s *Session) AddLetter(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Playing || len(s.buffer) >= len(s.secret) {
		return
	}
	s.buffer = append(s.buffer, unicode.ToUpper(r))
	s.touch()
}

// DeleteLetter removes the last buffered letter.
// No-op when the buffer is empty or the game is over.
func (s *Session) DeleteLetter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Playing || len(s.buffer) == 0 {
		return
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	s.touch()
}

// SubmitGuess scores the buffered guess.
//
// Rejections (wrong length, unknown word) leave the board untouched and do not
// consume a row. The dictionary is only asked when the word list does not
// already contain the guess.
func (s *Session) SubmitGuess(ctx context.Context) SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submit(ctx)
}

// SubmitWord replaces the buffer with word and submits it without releasing
// the lock in between. A word of the wrong length is rejected before the
// buffer is touched.
func (s *Session) SubmitWord(ctx context.Context, word string) SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return SubmitResult{Status: StatusGameOver, State: s.state}
	}
	w := []rune(strings.ToUpper(word))
	if len(w) != len(s.secret) {
		return SubmitResult{Status: StatusInvalidLength, State: s.state, Message: MsgInvalidLength, Shake: true}
	}
	s.buffer = w
	s.touch()
	return s.submit(ctx)
}

// submit must be called with mu held.
func (s *Session) submit(ctx context.Context) SubmitResult {
	if s.state.Terminal() {
		return SubmitResult{Status: StatusGameOver, State: s.state}
	}
	if len(s.buffer) != len(s.secret) {
		return SubmitResult{Status: StatusInvalidLength, State: s.state, Message: MsgInvalidLength, Shake: true}
	}

	guess := string(s.buffer)
	if !s.isValid(ctx, guess) {
		return SubmitResult{Status: StatusInvalidWord, State: s.state, Message: MsgInvalidWord, Shake: true}
	}

	tiles := Evaluate(string(s.secret), guess)
	s.rows[s.currentRow] = tiles
	s.hints.Update(tiles)
	s.buffer = s.buffer[:0]
	s.touch()

	res := SubmitResult{Status: StatusAccepted, Tiles: cloneRow(tiles)}
	switch {
	case guess == string(s.secret):
		s.state = Won
		res.Message = MsgWon
	case s.currentRow == MaxGuesses-1:
		s.state = Lost
		res.Message = string(s.secret)
	default:
		s.currentRow++
	}
	res.State = s.state
	if s.state.Terminal() {
		res.Outcome = &Outcome{
			Round:   s.round,
			Day:     s.day,
			Word:    string(s.secret),
			Won:     s.state == Won,
			Guesses: s.currentRow + 1,
		}
	}

	log.Debug().Str("gameId", s.id).Int("round", s.round).Int("row", s.currentRow).Str("state", string(s.state)).Msg("guess accepted")
	return res
}

// Reset draws a new secret and clears the board, buffer and hints.
// The session keeps its ID and starts the next round.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round++
	s.reset()
}

// Snapshot returns a deep copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]Tile, len(s.rows))
	for i, r := range s.rows {
		rows[i] = cloneRow(r)
	}
	snap := Snapshot{
		ID:         s.id,
		Guess:      string(s.buffer),
		CurrentRow: s.currentRow,
		State:      s.state,
		Rows:       rows,
		Hints:      s.hints.clone(),
		WordLength: len(s.secret),
		MaxGuesses: MaxGuesses,
		Day:        s.day,
		Round:      s.round,
	}
	if s.state == Lost {
		snap.Solution = string(s.secret)
	}
	return snap
}

// Round is the 1-based number of the current board within this session.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// GuessCount is the number of accepted guesses so far.
func (s *Session) GuessCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return s.currentRow + 1
	}
	return s.currentRow
}

// Secret returns the current secret. Callers must not reveal it mid-game.
func (s *Session) Secret() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.secret)
}

// reset must be called with mu held (or before the session is shared).
func (s *Session) reset() {
	s.day = s.cfg.Today()
	s.secret = []rune(strings.ToUpper(s.cfg.Words.WordOfDay(s.day)))
	s.rows = emptyRows(len(s.secret))
	s.buffer = nil
	s.currentRow = 0
	s.state = Playing
	s.hints = Hints{}
	s.touch()
}

func (s *Session) touch() { s.touched.Store(s.cfg.Now().UnixNano()) }

func (s *Session) isValid(ctx context.Context, guess string) bool {
	if s.cfg.Words.Contains(guess) {
		return true
	}
	if s.cfg.Dictionary == nil {
		return false
	}
	return s.cfg.Dictionary.IsValidWord(ctx, strings.ToLower(guess))
}

func emptyRows(n int) [][]Tile {
	rows := make([][]Tile, MaxGuesses)
	for i := range rows {
		row := make([]Tile, n)
		for j := range row {
			row[j] = Tile{Letter: "", State: StateEmpty}
		}
		rows[i] = row
	}
	return rows
}

func cloneRow(r []Tile) []Tile {
	out := make([]Tile, len(r))
	copy(out, r)
	return out
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
