// Package assets carries the files baked into the server binary.
package assets

import (
	"embed"
	"io"
)

//go:embed wordlist.txt
var FS embed.FS

// WordlistName is the embedded fallback word list, one word per line.
const WordlistName = "wordlist.txt"

// Wordlist opens the embedded word list.
func Wordlist() (io.ReadCloser, error) {
	return FS.Open(WordlistName)
}
