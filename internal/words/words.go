// internal/words/words.go
//
// Dictionary handling for the game.
//
// Responsibilities:
//   - Parse a word list (one word per line) into an immutable lookup set.
//   - Lowercase every entry on the way in; nothing else is filtered.
//   - Refuse binary input (invalid UTF-8 or NUL bytes) as malformed.
//
// Word list format:
//   - Plain text, "\n" or "\r\n" line endings.
//   - Blank lines become the empty entry. It can never match a submitted
//     word because empty submissions are rejected before lookup.
//
// Loading is asynchronous and lives in loader.go; where the list comes from
// lives in sources.go.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxLineLen bounds a single line of the word list.
const maxLineLen = 1 << 16

// ErrMalformed is returned by Parse for input that is not a text word list.
var ErrMalformed = errors.New("malformed word list")

// Dictionary is a read-only set of lowercase words.
type Dictionary struct {
	set map[string]struct{}
}

// New builds a dictionary from ws, lowercasing each entry.
func New(ws ...string) *Dictionary {
	caser := cases.Lower(language.Und)
	d := &Dictionary{set: make(map[string]struct{}, len(ws))}
	for _, w := range ws {
		d.set[caser.String(w)] = struct{}{}
	}
	return d
}

// Parse reads one word per line from r.
func Parse(r io.Reader) (*Dictionary, error) {
	caser := cases.Lower(language.Und)
	d := &Dictionary{set: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLen)
	line := 0
	for sc.Scan() {
		line++
		w := sc.Text()
		if !utf8.ValidString(w) || strings.ContainsRune(w, 0) {
			return nil, fmt.Errorf("words: line %d: %w", line, ErrMalformed)
		}
		d.set[caser.String(w)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: scan word list: %w", err)
	}
	return d, nil
}

// Contains reports whether w is in the dictionary. The lookup is exact;
// callers pass lowercase words.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[w]
	return ok
}

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int { return len(d.set) }
