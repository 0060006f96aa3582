// internal/tiles/bag.go
//
// The letter bag: the reserve pool a game draws its stack from.
// Responsibilities:
//   - Build a bag from a fixed letter distribution, one Tile per physical letter.
//   - Shuffle the remaining contents uniformly (Fisher–Yates via a Shuffler).
//   - Hand out tiles one at a time; a bag never grows back.
//
// Notes:
//   - Tile IDs are assigned once, when the bag is built, so duplicate letters
//     stay distinguishable for the lifetime of a game.
//   - The default Shuffler is frand (crypto-seeded, unbiased). Tests pass a
//     seeded math/rand/v2 generator instead.

package tiles

import (
	"strings"

	"lukechampine.com/frand"
)

// Shuffler permutes n elements through swap. Both frand and
// *math/rand/v2.Rand satisfy it with their Fisher–Yates Shuffle.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type cryptoShuffler struct{}

func (cryptoShuffler) Shuffle(n int, swap func(i, j int)) { frand.Shuffle(n, swap) }

// CryptoShuffler is the default Shuffler used by NewBag.
var CryptoShuffler Shuffler = cryptoShuffler{}

type ordered struct{}

func (ordered) Shuffle(int, func(i, j int)) {}

// Ordered is a Shuffler that leaves the bag untouched, so tiles come out in
// the order they were put in. Used for scripted games.
var Ordered Shuffler = ordered{}

// Bag holds the tiles not yet in play.
type Bag struct {
	tiles    []Tile
	initial  int
	shuffler Shuffler
}

// NewBag builds a bag holding every letter of d, in alphabetical order
// before the first shuffle. A nil shuffler means CryptoShuffler.
func NewBag(d Distribution, s Shuffler) *Bag {
	var sb strings.Builder
	for r := 'a'; r <= 'z'; r++ {
		for i := 0; i < d[r]; i++ {
			sb.WriteRune(r)
		}
	}
	return NewBagOf(sb.String(), s)
}

// NewBagOf builds a bag from an explicit letter sequence. Characters outside
// a–z are skipped.
func NewBagOf(letters string, s Shuffler) *Bag {
	if s == nil {
		s = CryptoShuffler
	}
	b := &Bag{tiles: make([]Tile, 0, len(letters)), shuffler: s}
	for _, r := range letters {
		if !isLetter(r) {
			continue
		}
		b.tiles = append(b.tiles, Tile{ID: len(b.tiles), Letter: r})
	}
	b.initial = len(b.tiles)
	return b
}

// Len reports how many tiles remain in the bag.
func (b *Bag) Len() int { return len(b.tiles) }

// Initial reports how many tiles the bag was built with.
func (b *Bag) Initial() int { return b.initial }

// Empty reports whether the bag has run out.
func (b *Bag) Empty() bool { return len(b.tiles) == 0 }

// Shuffle applies a uniform random permutation to the remaining tiles.
func (b *Bag) Shuffle() {
	b.shuffler.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

// draw removes and returns the tile at the front of the bag.
func (b *Bag) draw() (Tile, bool) {
	if len(b.tiles) == 0 {
		return Tile{}, false
	}
	t := b.tiles[0]
	b.tiles = b.tiles[1:]
	return t, true
}

// Counts returns the remaining tiles as a letter multiset.
func (b *Bag) Counts() Counts {
	var c Counts
	for _, t := range b.tiles {
		c[Index(t.Letter)]++
	}
	return c
}

// Letters returns the remaining letters in their current order (debugging).
func (b *Bag) Letters() string { return lettersOf(b.tiles) }
