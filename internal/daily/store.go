package daily

import (
	"context"
	"database/sql"
)

// Result is one finished round of a game session.
type Result struct {
	GameID   string `json:"gameId"`
	Round    int    `json:"round"`
	PlayerID string `json:"playerId"`
	Day      int    `json:"day"`
	Word     string `json:"word"`
	Won      bool   `json:"won"`
	Guesses  int    `json:"guesses"`
}

// Stats aggregates the results of one calendar day.
type Stats struct {
	Day          int         `json:"day"`
	Played       int         `json:"played"`
	Wins         int         `json:"wins"`
	Distribution map[int]int `json:"distribution"` // guesses → wins
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the player has a finished game for day.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID string, day int) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM results WHERE player_id=? AND day=?",
		playerID, day,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r. A second insert for the same game and round is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(game_id, round, player_id, day, word, won, guesses)
		 VALUES(?,?,?,?,?,?,?)`, r.GameID, r.Round, r.PlayerID, r.Day, r.Word, won, r.Guesses,
	)
	return err
}

// DayStats aggregates every result for day.
func (s *Store) DayStats(ctx context.Context, day int) (Stats, error) {
	st := Stats{Day: day, Distribution: map[int]int{}}
	rows, err := s.db.QueryContext(ctx,
		`SELECT won, guesses, COUNT(1)
		 FROM results
		 WHERE day=?
		 GROUP BY won, guesses`, day,
	)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var won, guesses, n int
		if err := rows.Scan(&won, &guesses, &n); err != nil {
			return st, err
		}
		st.Played += n
		if won == 1 {
			st.Wins += n
			st.Distribution[guesses] += n
		}
	}
	return st, rows.Err()
}
