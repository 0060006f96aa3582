package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordstack/internal/tiles"
	"github.com/robalobadob/wordstack/internal/words"
)

func stackOf(letters string) *tiles.Stack {
	s := tiles.NewStack()
	tiles.Refill(s, tiles.NewBagOf(letters, tiles.Ordered), len(letters))
	return s
}

func historyOf(ws ...string) *History {
	h := &History{}
	for _, w := range ws {
		h.add(w)
	}
	return h
}

func TestValidate(t *testing.T) {
	stack := stackOf("catxqzr")
	dict := words.New("cat", "cart", "tax", "act", "zzz")

	testCases := []struct {
		name    string
		word    string
		history []string
		want    Reason
	}{
		{"accepted", "cat", nil, ReasonNone},
		{"empty", "", nil, ReasonEmpty},
		{"missing letter", "dog", nil, ReasonLettersUnavailable},
		{"tile reused", "zzz", nil, ReasonLettersUnavailable},
		{"already used", "cat", []string{"cat"}, ReasonAlreadyUsed},
		{"not a word", "rat", nil, ReasonNotInDictionary},
		{"upper case never matches", "CAT", nil, ReasonLettersUnavailable},
		{"letters beat history", "dog", []string{"dog"}, ReasonLettersUnavailable},
		{"history beats dictionary", "rat", []string{"rat"}, ReasonAlreadyUsed},
		{"non ascii", "çat", nil, ReasonLettersUnavailable},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Validate(tc.word, stack, dict, historyOf(tc.history...))
			assert.Equal(t, tc.want, v.Reason)
			assert.Equal(t, tc.want == ReasonNone, v.Accepted)
			assert.Equal(t, tc.word, v.Word)
		})
	}
	assert.Equal(t, "catxqzr", stack.Letters(), "validation never consumes tiles")
}

// A non-empty word is accepted exactly when it is spellable, unused and in
// the dictionary.
func TestValidateAllCombinations(t *testing.T) {
	for _, spellable := range []bool{false, true} {
		for _, used := range []bool{false, true} {
			for _, known := range []bool{false, true} {
				word := "tax"
				stack := stackOf("catxqzr")
				if !spellable {
					stack = stackOf("catqzre")
				}
				h := historyOf()
				if used {
					h = historyOf(word)
				}
				dict := words.New("cat")
				if known {
					dict = words.New("cat", word)
				}

				v := Validate(word, stack, dict, h)
				assert.Equal(t, spellable && !used && known, v.Accepted,
					"spellable=%v used=%v known=%v", spellable, used, known)
			}
		}
	}
}

func TestValidateNilCollaborators(t *testing.T) {
	assert.Equal(t, ReasonLettersUnavailable, Validate("a", nil, nil, nil).Reason)
	assert.Equal(t, ReasonNotInDictionary, Validate("a", stackOf("a"), nil, nil).Reason)
}

func TestScoreWord(t *testing.T) {
	testCases := []struct {
		word string
		pts  int
	}{
		{"cat", 5},
		{"", 0},
		{"quiz", 22},
		{"jinx", 18},
		{"kayak", 16},
		{"dog", 5},
		{"fhvwy", 20},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.pts, ScoreWord(tc.word), tc.word)
	}
	assert.Equal(t, 0, LetterPoints('!'))
}

func TestScoreboard(t *testing.T) {
	var b Scoreboard
	assert.False(t, b.Tick())

	b.Add(3)
	b.Add(-4)
	b.Add(0)
	assert.Equal(t, 3, b.Score())
	assert.True(t, b.Tick())
	assert.Equal(t, 1, b.Visible())

	b.Advance(10)
	assert.Equal(t, 3, b.Visible())
	assert.False(t, b.Tick())
	b.Advance(-1)
	assert.Equal(t, 3, b.Visible())
}

func TestHistoryNewestFirstAndUnique(t *testing.T) {
	h := historyOf("cat", "dog", "cat", "bird")
	assert.Equal(t, []string{"bird", "dog", "cat"}, h.Words())
	assert.Equal(t, 3, h.Len())

	ws := h.Words()
	ws[0] = "mutated"
	assert.Equal(t, "bird", h.Words()[0])
}
