package game

import "github.com/samber/lo"

// letterPoints is the fixed tile value table.
var letterPoints = map[rune]int{
	'a': 1, 'e': 1, 'i': 1, 'l': 1, 'n': 1,
	'o': 1, 'r': 1, 's': 1, 't': 1, 'u': 1,

	'd': 2, 'g': 2,

	'b': 3, 'c': 3, 'm': 3, 'p': 3,

	'f': 4, 'h': 4, 'v': 4, 'w': 4, 'y': 4,

	'k': 5,

	'j': 8, 'x': 8,

	'q': 10, 'z': 10,
}

// LetterPoints returns the value of one letter; 0 outside a–z.
func LetterPoints(r rune) int { return letterPoints[r] }

// ScoreWord sums the letter values of word.
func ScoreWord(word string) int {
	return lo.SumBy([]rune(word), LetterPoints)
}

// Scoreboard keeps the true score and the animated score shown to the
// player. The visible score only ever moves up by one per tick and never
// passes the true score.
type Scoreboard struct {
	score   int
	visible int
}

// Add credits points to the true score. Non-positive amounts are ignored.
func (b *Scoreboard) Add(points int) {
	if points > 0 {
		b.score += points
	}
}

// Tick is the animation primitive: it moves the visible score one point
// toward the true score and reports whether it moved. Hosts that drive
// their own frame loop call it once per frame.
func (b *Scoreboard) Tick() bool {
	if b.visible < b.score {
		b.visible++
		return true
	}
	return false
}

// Advance applies n ticks at once; it is what the session uses when
// converting elapsed time into ticks.
func (b *Scoreboard) Advance(n int) {
	if n <= 0 {
		return
	}
	b.visible = min(b.visible+n, b.score)
}

func (b *Scoreboard) Score() int   { return b.score }
func (b *Scoreboard) Visible() int { return b.visible }
