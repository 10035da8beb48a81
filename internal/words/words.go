// internal/words/words.go
//
// Calendar word list management.
//
// Responsibilities:
//   - Load the calendar list from a configured file or the embedded default.
//   - Resolve the word for a calendar day, or a random word outside the window.
//   - Answer case-insensitive membership checks for guess validation.
//
// Word list:
//   - One word per line, "#" starts a comment line, blank lines are skipped.
//   - Position N (1-based) is the word for calendar day N.
//   - Exactly Days entries are expected; other lengths only log a warning.
//
// Environment variables (read by internal/config):
//   CALENDAR_WORDS_FILE=/path/to/words.txt
//   WORDS_SEED=42

package words

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/julekalender/assets"
)

// DefaultWord is returned when the list has no usable entry.
const DefaultWord = "JULEN"

// Days is the length of the calendar window.
const Days = 25

// Source holds the ordered calendar list. Safe for concurrent use.
type Source struct {
	list []string            // lowercase, in calendar order
	set  map[string]struct{} // lowercase lookup

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

// New builds a Source from list. A nil rnd gets a randomly seeded generator.
func New(list []string, rnd *rand.Rand) *Source {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	norm := make([]string, 0, len(list))
	for _, w := range list {
		norm = append(norm, strings.ToLower(strings.TrimSpace(w)))
	}
	if len(norm) != Days {
		log.Warn().Int("expected", Days).Int("got", len(norm)).Msg("calendar word list has unexpected length")
	}
	return &Source{list: norm, set: toSet(norm), rnd: rnd}
}

// Load reads the list from path, or the embedded default when path is empty.
func Load(path string, rnd *rand.Rand) (*Source, error) {
	if path == "" {
		f, err := assets.OpenCalendar()
		if err != nil {
			return nil, fmt.Errorf("embedded calendar words: %w", err)
		}
		defer f.Close()
		list, err := parse(f)
		if err != nil {
			return nil, fmt.Errorf("embedded calendar words: %w", err)
		}
		return New(list, rnd), nil
	}
	list, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(list, rnd), nil
}

// Seeded returns a deterministic generator for tests and WORDS_SEED.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WordOfDay returns the uppercased word for a calendar day.
//
//   - 1 <= day <= Days: the entry at that position, DefaultWord if missing.
//   - anything else (0 means "outside the window"): a uniformly random entry.
func (s *Source) WordOfDay(day int) string {
	if day >= 1 && day <= Days {
		return s.at(day - 1)
	}
	if len(s.list) == 0 {
		return DefaultWord
	}
	s.mu.Lock()
	i := s.rnd.IntN(len(s.list))
	s.mu.Unlock()
	return s.at(i)
}

// Contains reports whether w is in the list, ignoring case.
func (s *Source) Contains(w string) bool {
	_, ok := s.set[strings.ToLower(w)]
	return ok
}

// Len is the number of loaded words.
func (s *Source) Len() int { return len(s.list) }

// Words returns a copy of the list in calendar order.
func (s *Source) Words() []string {
	return append([]string(nil), s.list...)
}

func (s *Source) at(i int) string {
	if i < 0 || i >= len(s.list) || s.list[i] == "" {
		return DefaultWord
	}
	return strings.ToUpper(s.list[i])
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// parse keeps non-empty, non-comment lines, lowercased and trimmed.
func parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out, sc.Err()
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}
