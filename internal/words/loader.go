package words

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNotReady is returned while the dictionary has not been loaded, and
// forever after a failed load.
var ErrNotReady = errors.New("words: dictionary not loaded")

// Loader loads a dictionary exactly once and publishes it when done.
// Until then Ready reports false and Contains matches nothing. A failed
// load is final: the loader stays not-ready and gameplay stays inert.
//
// Loader is safe for concurrent use.
type Loader struct {
	src  Source
	once sync.Once
	dict atomic.Pointer[Dictionary]
	done chan struct{}
	err  error // written before done is closed
}

// NewLoader returns a loader that will read from src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src, done: make(chan struct{})}
}

// Preloaded returns a loader that is already ready with d.
func Preloaded(d *Dictionary) *Loader {
	l := &Loader{done: make(chan struct{})}
	l.once.Do(func() {
		l.dict.Store(d)
		close(l.done)
	})
	return l
}

// Start runs Load in its own goroutine.
func (l *Loader) Start(ctx context.Context) {
	go func() { _ = l.Load(ctx) }()
}

// Load reads and parses the word list. Only the first call does any work;
// later calls wait for it and return its result.
func (l *Loader) Load(ctx context.Context) error {
	l.once.Do(func() {
		defer close(l.done)
		start := time.Now()
		d, err := l.read(ctx)
		if err != nil {
			l.err = err
			log.Error().Err(err).Str("source", l.src.String()).Msg("dictionary load failed; game stays inert")
			return
		}
		l.dict.Store(d)
		log.Info().
			Str("source", l.src.String()).
			Int("words", d.Len()).
			Dur("took", time.Since(start)).
			Msg("dictionary loaded")
	})
	<-l.done
	return l.err
}

func (l *Loader) read(ctx context.Context) (*Dictionary, error) {
	rc, err := l.src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.src, err)
	}
	defer rc.Close()
	d, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.src, err)
	}
	return d, nil
}

// Done is closed once loading has finished, successfully or not.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Ready reports whether the dictionary is available.
func (l *Loader) Ready() bool { return l.dict.Load() != nil }

// Contains reports whether w is a dictionary word. It is false for every
// word until the dictionary is ready.
func (l *Loader) Contains(w string) bool {
	d := l.dict.Load()
	return d != nil && d.Contains(w)
}

// Dictionary returns the loaded dictionary or ErrNotReady.
func (l *Loader) Dictionary() (*Dictionary, error) {
	if d := l.dict.Load(); d != nil {
		return d, nil
	}
	return nil, ErrNotReady
}
