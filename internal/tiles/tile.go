// Package tiles implements the letter economy of a game: the bag letters
// are drawn from and the stack the player builds words with.
package tiles

import "strings"

// Tile is one physical letter. Two tiles showing the same letter are still
// different tiles.
type Tile struct {
	ID     int  `json:"id"`
	Letter rune `json:"letter"`
}

func (t Tile) String() string { return string(t.Letter) }

// Distribution maps a letter to the number of copies in a fresh bag.
type Distribution map[rune]int

// English is the classic distribution of the game: 88 tiles, heavy on
// vowels and common consonants.
var English = Distribution{
	'e': 12, 'a': 9, 'i': 9, 'o': 8,
	'n': 6, 'r': 6, 't': 6,
	'l': 4, 's': 4, 'u': 4, 'd': 4,
	'g': 3,
	'b': 2, 'c': 2, 'm': 2, 'p': 2,
	'k': 1, 'j': 1, 'x': 1, 'q': 1, 'z': 1,
}

// Size returns the total number of tiles d describes.
func (d Distribution) Size() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Index maps a lowercase ASCII letter to 0..25, or -1 for anything else.
func Index(r rune) int {
	if !isLetter(r) {
		return -1
	}
	return int(r - 'a')
}

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' }

func lettersOf(ts []Tile) string {
	var sb strings.Builder
	sb.Grow(len(ts))
	for _, t := range ts {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}
