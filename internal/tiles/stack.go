package tiles

import "errors"

// DefaultStackSize is how many tiles a player normally has to choose from.
const DefaultStackSize = 7

// ErrTileNotInStack is returned by Take when the stack cannot cover the word.
var ErrTileNotInStack = errors.New("tile not in stack")

// Counts is a letter multiset indexed by Index.
type Counts [26]int

// CountLetters builds the multiset of word. ok is false if word contains
// anything other than a–z.
func CountLetters(word string) (c Counts, ok bool) {
	for _, r := range word {
		i := Index(r)
		if i < 0 {
			return c, false
		}
		c[i]++
	}
	return c, true
}

// Covers reports whether every letter of other fits inside c.
func (c Counts) Covers(other Counts) bool {
	for i := range c {
		if other[i] > c[i] {
			return false
		}
	}
	return true
}

// Stack is the ordered set of tiles the player can currently use.
type Stack struct {
	tiles []Tile
}

// NewStack returns a stack holding ts in order.
func NewStack(ts ...Tile) *Stack {
	return &Stack{tiles: append(make([]Tile, 0, DefaultStackSize), ts...)}
}

// Len reports the number of tiles on the stack.
func (s *Stack) Len() int { return len(s.tiles) }

// Empty reports whether the stack has no tiles left.
func (s *Stack) Empty() bool { return len(s.tiles) == 0 }

// Tiles returns a copy of the stack contents.
func (s *Stack) Tiles() []Tile { return append([]Tile(nil), s.tiles...) }

// Letters returns the stack letters in order.
func (s *Stack) Letters() string { return lettersOf(s.tiles) }

// Counts returns the stack as a letter multiset.
func (s *Stack) Counts() Counts {
	var c Counts
	for _, t := range s.tiles {
		c[Index(t.Letter)]++
	}
	return c
}

// CanSpell reports whether word can be built from the stack without using
// any tile twice.
func (s *Stack) CanSpell(word string) bool {
	need, ok := CountLetters(word)
	if !ok {
		return false
	}
	return s.Counts().Covers(need)
}

// Take removes one tile per letter of word, always the first matching tile
// by position, and returns the removed tiles. The order of the remaining
// tiles is preserved. Nothing is removed if the word cannot be spelled.
func (s *Stack) Take(word string) ([]Tile, error) {
	if !s.CanSpell(word) {
		return nil, ErrTileNotInStack
	}
	used := make([]bool, len(s.tiles))
	taken := make([]Tile, 0, len(word))
	for _, r := range word {
		for i, t := range s.tiles {
			if !used[i] && t.Letter == r {
				used[i] = true
				taken = append(taken, t)
				break
			}
		}
	}
	kept := s.tiles[:0]
	for i, t := range s.tiles {
		if !used[i] {
			kept = append(kept, t)
		}
	}
	s.tiles = kept
	return taken, nil
}

// Refill draws from bag until stack holds target tiles or the bag runs dry.
// The bag is shuffled once before the batch. A full stack is left alone and
// the bag is not touched. It returns the drawn tiles.
func Refill(stack *Stack, bag *Bag, target int) []Tile {
	if stack.Len() >= target || bag.Empty() {
		return nil
	}
	bag.Shuffle()
	var drawn []Tile
	for stack.Len() < target {
		t, ok := bag.draw()
		if !ok {
			break
		}
		stack.tiles = append(stack.tiles, t)
		drawn = append(drawn, t)
	}
	return drawn
}
