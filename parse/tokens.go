package parse

import (
	"strings"

	"github.com/ef-ds/deque"
)

// Tokens is a consumable stream of usage pattern or argument vector tokens.
type Tokens struct {
	q *deque.Deque
}

// FromArgs creates a token stream over args. Empty strings are kept: they are
// valid argument vector entries.
func FromArgs(args []string) *Tokens {
	q := deque.New()
	for _, arg := range args {
		q.PushBack(arg)
	}

	return &Tokens{q: q}
}

// FromPattern tokenizes a usage pattern. Structural symbols ( ) [ ] | and ...
// become standalone tokens, then the result is split on whitespace.
func FromPattern(source string) *Tokens {
	return FromArgs(strings.Fields(isolateSymbols(source)))
}

// isolateSymbols surrounds every structural symbol in source with spaces
func isolateSymbols(source string) string {
	var b strings.Builder
	b.Grow(len(source) + len(source)/2)
	for i := 0; i < len(source); {
		switch {
		case strings.HasPrefix(source[i:], "..."):
			b.WriteString(" ... ")
			i += 3
		case strings.IndexByte("()[]|", source[i]) >= 0:
			b.WriteByte(' ')
			b.WriteByte(source[i])
			b.WriteByte(' ')
			i++
		default:
			b.WriteByte(source[i])
			i++
		}
	}

	return b.String()
}

// Current returns the next token without consuming it, or "" when the stream is empty
func (t *Tokens) Current() string {
	v, ok := t.q.Front()
	if !ok {
		return ""
	}

	return v.(string)
}

// Move consumes and returns the next token, or "" when the stream is empty
func (t *Tokens) Move() string {
	v, ok := t.q.PopFront()
	if !ok {
		return ""
	}

	return v.(string)
}

// Empty reports whether every token has been consumed
func (t *Tokens) Empty() bool {
	return t.q.Len() == 0
}

// Len returns the number of tokens left
func (t *Tokens) Len() int {
	return t.q.Len()
}

// Drain consumes and returns all remaining tokens
func (t *Tokens) Drain() []string {
	rest := make([]string, 0, t.q.Len())
	for !t.Empty() {
		rest = append(rest, t.Move())
	}

	return rest
}
