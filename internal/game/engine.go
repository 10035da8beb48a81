// internal/game/engine.go
//
// Guess scoring and keyboard hint aggregation.
//
// Notes:
//   - Letters are runes; the word list contains Æ/Ø/Å.
//   - Both functions are free of session state and safe to call anywhere.

package game

import "strings"

// Evaluate scores guess against secret using the two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches correct and consume that letter from the secret's counts.
//
// Pass 2:
//   - For each remaining tile: present if the letter still has count left
//     (consuming it), otherwise absent.
//
// The number of correct+present tiles for a letter therefore never exceeds the
// letter's count in the secret. Inputs are uppercased first. If the rune
// lengths differ Evaluate returns nil.
func Evaluate(secret, guess string) []Tile {
	s := []rune(strings.ToUpper(secret))
	g := []rune(strings.ToUpper(guess))
	if len(s) != len(g) {
		return nil
	}

	counts := make(map[rune]int, len(s))
	for _, r := range s {
		counts[r]++
	}

	res := make([]Tile, len(g))
	for i, r := range g {
		if r == s[i] {
			res[i] = Tile{Letter: string(r), State: StateCorrect}
			counts[r]--
		} else {
			res[i] = Tile{Letter: string(r), State: StateTBD}
		}
	}

	for i, r := range g {
		if res[i].State != StateTBD {
			continue
		}
		if counts[r] > 0 {
			res[i].State = StatePresent
			counts[r]--
		} else {
			res[i].State = StateAbsent
		}
	}
	return res
}

// Hints is the keyboard's best-known state per letter.
type Hints map[string]LetterState

// Update folds one scored row into h, in tile order.
//
// correct always wins and sticks; present replaces anything but correct;
// absent is only recorded for a letter not seen before (first case).
func (h Hints) Update(tiles []Tile) {
	for _, t := range tiles {
		cur, seen := h[t.Letter]
		if !seen || t.State == StateCorrect || (t.State == StatePresent && cur != StateCorrect) {
			h[t.Letter] = t.State
		}
	}
}

// clone returns an independent copy.
func (h Hints) clone() Hints {
	out := make(Hints, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
