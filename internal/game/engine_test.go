package game

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func states(tiles []Tile) []LetterState {
	out := make([]LetterState, len(tiles))
	for i, t := range tiles {
		out[i] = t.State
	}
	return out
}

const (
	C = StateCorrect
	P = StatePresent
	A = StateAbsent
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		guess  string
		want   []LetterState
	}{
		{"all correct", "KAGE", "KAGE", []LetterState{C, C, C, C}},
		{"lowercase input", "kage", "KaGe", []LetterState{C, C, C, C}},
		{"nothing shared", "SOVS", "KAGE", []LetterState{A, A, A, A}},
		{"duplicate guess letter, exact match wins", "ALLE", "LLLE", []LetterState{A, C, C, C}},
		{"single secret letter, repeated guess", "KAGE", "AAAA", []LetterState{A, C, A, A}},
		{"anagram", "GAVER", "AGAVE", []LetterState{P, P, A, P, P}},
		{"double secret letter matched in place", "HYGGE", "GGGGG", []LetterState{A, A, C, C, A}},
		{"non-ascii letters", "GLØGG", "GØGLE", []LetterState{C, P, P, P, A}},
		{"present consumed before later exact", "SALME", "EEEEE", []LetterState{A, A, A, A, C}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.secret, tt.guess)
			require.Len(t, got, len([]rune(tt.guess)))
			assert.Equal(t, tt.want, states(got))
			for i, r := range []rune(strings.ToUpper(tt.guess)) {
				assert.Equal(t, string(r), got[i].Letter)
			}
		})
	}
}

func TestEvaluate_LengthMismatch(t *testing.T) {
	assert.Nil(t, Evaluate("KAGE", "KAG"))
	assert.Nil(t, Evaluate("BÅND", "BAAND"))
}

// The number of correct+present tiles for a letter never exceeds its count
// in the secret, and no tile is left as tbd.
func TestEvaluate_NeverOverAwards(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("ABEØ")
	word := func(n int) string {
		b := make([]rune, n)
		for i := range b {
			b[i] = alphabet[rnd.IntN(len(alphabet))]
		}
		return string(b)
	}
	for i := 0; i < 2000; i++ {
		n := 3 + rnd.IntN(4)
		secret, guess := word(n), word(n)
		tiles := Evaluate(secret, guess)
		require.Len(t, tiles, n)

		inSecret := map[string]int{}
		for _, r := range secret {
			inSecret[string(r)]++
		}
		awarded := map[string]int{}
		for j, tile := range tiles {
			require.NotEqual(t, StateTBD, tile.State)
			if tile.State == StateCorrect {
				require.Equal(t, []rune(secret)[j], []rune(guess)[j])
			}
			if tile.State == StateCorrect || tile.State == StatePresent {
				awarded[tile.Letter]++
			}
		}
		for letter, n := range awarded {
			assert.LessOrEqual(t, n, inSecret[letter], "secret=%s guess=%s letter=%s", secret, guess, letter)
		}
	}
}

func TestHints_Update(t *testing.T) {
	row := func(pairs ...any) []Tile {
		var out []Tile
		for i := 0; i < len(pairs); i += 2 {
			out = append(out, Tile{Letter: pairs[i].(string), State: pairs[i+1].(LetterState)})
		}
		return out
	}

	tests := []struct {
		name string
		rows [][]Tile
		want LetterState
	}{
		{"absent on first sight is recorded", [][]Tile{row("K", A)}, A},
		{"present on first sight", [][]Tile{row("K", P)}, P},
		{"absent upgraded by present", [][]Tile{row("K", A), row("K", P)}, P},
		{"absent upgraded by correct", [][]Tile{row("K", A), row("K", C)}, C},
		{"present upgraded by correct", [][]Tile{row("K", P), row("K", C)}, C},
		{"present not downgraded by absent", [][]Tile{row("K", P), row("K", A)}, P},
		{"correct not downgraded by present", [][]Tile{row("K", C), row("K", P)}, C},
		{"correct not downgraded by absent", [][]Tile{row("K", C), row("K", A)}, C},
		{"same row: absent then correct", [][]Tile{row("L", A, "L", C)}, C},
		{"same row: correct then absent", [][]Tile{row("L", C, "L", A)}, C},
		{"same row: present then absent", [][]Tile{row("L", P, "L", A)}, P},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Hints{}
			for _, r := range tt.rows {
				h.Update(r)
			}
			assert.Equal(t, tt.want, h[tt.rows[0][0].Letter])
		})
	}
}

func TestHints_Monotonic(t *testing.T) {
	strength := map[LetterState]int{A: 1, P: 2, C: 3}
	rnd := rand.New(rand.NewPCG(3, 5))
	all := []LetterState{A, P, C}

	h := Hints{}
	for i := 0; i < 500; i++ {
		letter := string(rune('A' + rnd.IntN(3)))
		before, seen := h[letter]
		h.Update([]Tile{{Letter: letter, State: all[rnd.IntN(3)]}})
		if seen {
			assert.GreaterOrEqual(t, strength[h[letter]], strength[before])
		}
	}
}

func TestHints_FromEvaluate(t *testing.T) {
	h := Hints{}
	h.Update(Evaluate("ALLE", "LLLE"))
	assert.Equal(t, Hints{"L": C, "E": C}, h)

	h.Update(Evaluate("ALLE", "ALSO"))
	assert.Equal(t, Hints{"L": C, "E": C, "A": C, "S": A, "O": A}, h)
}
