// internal/game/types.go
//
// Core type definitions for the calendar word game.
// Defines:
//   - LetterState: per-letter result of a guess (and the keyboard hint scale).
//   - Tile / GameState: grid cells and the session lifecycle.
//   - SubmitStatus / SubmitResult: the signal returned for each submission.

package game

// MaxGuesses is the number of rows on the board.
const MaxGuesses = 6

// LetterState is the classification of one letter.
//
//   - "correct": letter is in the secret at this position.
//   - "present": letter is in the secret at another position.
//   - "absent":  letter is not (or no longer) available in the secret.
//   - "empty":   unused grid cell.
//   - "tbd":     used inside Evaluate only; never returned.
type LetterState string

const (
	StateCorrect LetterState = "correct"
	StatePresent LetterState = "present"
	StateAbsent  LetterState = "absent"
	StateEmpty   LetterState = "empty"
	StateTBD     LetterState = "tbd"
)

// Tile is one cell of the board.
type Tile struct {
	Letter string      `json:"letter"`
	State  LetterState `json:"state"`
}

// GameState is the session lifecycle. Won and Lost are terminal.
type GameState string

const (
	Playing GameState = "playing"
	Won     GameState = "won"
	Lost    GameState = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s GameState) Terminal() bool { return s == Won || s == Lost }

// SubmitStatus tells the caller what happened to a submission.
type SubmitStatus string

const (
	StatusAccepted      SubmitStatus = "accepted"
	StatusInvalidLength SubmitStatus = "invalid_length"
	StatusInvalidWord   SubmitStatus = "invalid_word"
	StatusGameOver      SubmitStatus = "game_over"
)

// User-facing notices.
const (
	MsgInvalidLength = "Ikke korrekt antal bogstaver"
	MsgInvalidWord   = "Ikke i ordlisten"
	MsgWon           = "Fremragende!"
)

// SubmitResult is emitted once per SubmitGuess call. Message and Shake are
// transient UI signals; clearing them is the caller's job.
type SubmitResult struct {
	Status  SubmitStatus `json:"status"`
	Tiles   []Tile       `json:"tiles,omitempty"`
	State   GameState    `json:"state"`
	Message string       `json:"message,omitempty"`
	Shake   bool         `json:"shake,omitempty"`
	// Outcome is set on the accepted guess that ends the round.
	Outcome *Outcome `json:"-"`
}

// Outcome summarises a finished round.
type Outcome struct {
	Round   int
	Day     int
	Word    string
	Won     bool
	Guesses int
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	ID         string                 `json:"id"`
	Guess      string                 `json:"guess"`
	CurrentRow int                    `json:"currentRow"`
	State      GameState              `json:"state"`
	Rows       [][]Tile               `json:"rows"`
	Hints      map[string]LetterState `json:"hints"`
	WordLength int                    `json:"wordLength"`
	MaxGuesses int                    `json:"maxGuesses"`
	Day        int                    `json:"day"`
	Round      int                    `json:"round"`
	Solution   string                 `json:"solution,omitempty"` // only once lost
}
