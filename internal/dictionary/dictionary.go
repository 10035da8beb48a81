// Package dictionary answers "is this a real word?" for guesses that are not
// on the calendar list.
//
// Every implementation fails open: when the lookup cannot be completed the
// word is accepted, so a flaky network never blocks a turn.
package dictionary

import "context"

// Dictionary is satisfied by *Client, Func and AcceptAll.
type Dictionary interface {
	IsValidWord(ctx context.Context, word string) bool
}

// Func adapts a plain function.
type Func func(ctx context.Context, word string) bool

func (f Func) IsValidWord(ctx context.Context, word string) bool { return f(ctx, word) }

// AcceptAll accepts every word. Used when lookups are disabled.
var AcceptAll Dictionary = Func(func(context.Context, string) bool { return true })
