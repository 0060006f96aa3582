package game

import "github.com/robalobadob/wordstack/internal/tiles"

// Wordlist is anything that can answer dictionary membership.
type Wordlist interface {
	Contains(word string) bool
}

// History is the log of accepted words, newest first. A word appears at
// most once.
type History struct {
	words []string
	seen  map[string]struct{}
}

// Contains reports whether w was already accepted.
func (h *History) Contains(w string) bool {
	_, ok := h.seen[w]
	return ok
}

// add records w as the newest entry. It is a no-op for a repeated word.
func (h *History) add(w string) bool {
	if h.Contains(w) {
		return false
	}
	if h.seen == nil {
		h.seen = make(map[string]struct{})
	}
	h.seen[w] = struct{}{}
	h.words = append([]string{w}, h.words...)
	return true
}

// Words returns a copy of the log, newest first.
func (h *History) Words() []string {
	return append([]string{}, h.words...)
}

// Len returns the number of accepted words.
func (h *History) Len() int { return len(h.words) }

// Validate decides whether word may be played. Checks run in a fixed order
// and the first failure is reported:
//
//  1. the word is empty
//  2. its letters are not all on the stack (each tile used at most once)
//  3. it was already accepted
//  4. it is not in the dictionary
//
// Validate never mutates its arguments and is total over all strings.
func Validate(word string, stack *tiles.Stack, dict Wordlist, history *History) Verdict {
	v := Verdict{Word: word}
	switch {
	case word == "":
		v.Reason = ReasonEmpty
	case stack == nil || !stack.CanSpell(word):
		v.Reason = ReasonLettersUnavailable
	case history != nil && history.Contains(word):
		v.Reason = ReasonAlreadyUsed
	case dict == nil || !dict.Contains(word):
		v.Reason = ReasonNotInDictionary
	default:
		v.Accepted = true
		v.Points = ScoreWord(word)
	}
	return v
}
