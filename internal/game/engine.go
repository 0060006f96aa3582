// internal/game/engine.go
//
// Core game engine for a single word-stack session.
// Responsibilities:
//   - Create new sessions with a fresh bag and a stack of 7 tiles.
//   - Collect keystrokes into the input buffer.
//   - Validate committed words and apply the consequences of acceptance
//     (consume tiles, refill, record history, score).
//   - Run the turn state machine: typing → correct/incorrect → typing.
//   - Animate the visible score toward the true score.
//
// Notes:
//   - Time comes from an injected Clock. The session never sleeps or starts
//     timers; every entry point polls the clock first, so locked feedback
//     ends and score ticks land as soon as the session is touched after
//     their deadline.
//   - A Session is not safe for concurrent use. Callers serialize access
//     (see the store package).
//   - Running out of letters is not game over. Once bag and stack are both
//     empty, Exhausted reports true and every word is rejected.

package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordstack/internal/tiles"
)

const (
	// DefaultResolveDelay is how long correct/incorrect feedback stays up.
	DefaultResolveDelay = 500 * time.Millisecond
	// DefaultScoreTick is the visible-score animation step.
	DefaultScoreTick = 100 * time.Millisecond
)

// Key names understood by Press, besides single letters.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
)

// Clock tells the session what time it is.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Lexicon is a dictionary that may still be loading.
type Lexicon interface {
	Wordlist
	Ready() bool
}

// Option configures a Session.
type Option func(*Session)

// WithID fixes the session ID instead of generating one.
func WithID(id string) Option { return func(s *Session) { s.ID = id } }

// WithClock injects the time source.
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithBag supplies the bag to draw from instead of a shuffled English bag.
func WithBag(b *tiles.Bag) Option { return func(s *Session) { s.bag = b } }

// WithStackSize changes the target stack size.
func WithStackSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.stackSize = n
		}
	}
}

// WithResolveDelay changes how long feedback locks input.
func WithResolveDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.resolveDelay = d
		}
	}
}

// WithScoreTick changes the visible-score animation step.
func WithScoreTick(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.scoreTick = d
		}
	}
}

// Session holds the state of one single-player game.
type Session struct {
	ID string

	lex   Lexicon
	clock Clock

	bag     *tiles.Bag
	stack   *tiles.Stack
	history History
	board   Scoreboard

	buffer         []byte
	feedback       Feedback
	resolvingUntil time.Time
	lastTick       time.Time
	last           Verdict

	stackSize    int
	resolveDelay time.Duration
	scoreTick    time.Duration
}

// New starts a session that checks words against lex.
func New(lex Lexicon, opts ...Option) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		lex:          lex,
		clock:        SystemClock{},
		feedback:     Typing,
		stackSize:    tiles.DefaultStackSize,
		resolveDelay: DefaultResolveDelay,
		scoreTick:    DefaultScoreTick,
	}
	for _, o := range opts {
		o(s)
	}
	if s.bag == nil {
		s.bag = tiles.NewBag(tiles.English, nil)
	}
	s.stack = tiles.NewStack()
	tiles.Refill(s.stack, s.bag, s.stackSize)
	s.lastTick = s.clock.Now()
	return s
}

// Press handles one host key: a single letter (either case) types it,
// KeyBackspace deletes, KeyEnter commits. Other keys are ignored. It
// reports whether the key changed anything.
func (s *Session) Press(key string) bool {
	switch key {
	case KeyEnter:
		_, ok := s.Commit()
		return ok
	case KeyBackspace:
		return s.Delete()
	}
	if len(key) != 1 {
		return false
	}
	return s.Type(rune(key[0]))
}

// Type appends a letter to the buffer. Upper case is folded to lower case;
// anything that is not an ASCII letter is ignored.
func (s *Session) Type(r rune) bool {
	s.poll()
	if !s.accepting() {
		return false
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return false
	}
	s.buffer = append(s.buffer, byte(r))
	return true
}

// Delete removes the last buffered letter.
func (s *Session) Delete() bool {
	s.poll()
	if !s.accepting() || len(s.buffer) == 0 {
		return false
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	return true
}

// Commit submits the buffer. ok is false when the session ignored the
// commit: input is locked by pending feedback or the dictionary is not
// ready. Otherwise the verdict is returned and the session shows feedback
// until the resolve delay has passed.
func (s *Session) Commit() (v Verdict, ok bool) {
	now := s.poll()
	if !s.accepting() {
		log.Debug().Str("gameId", s.ID).Bool("ready", s.ready()).Msg("commit ignored")
		return Verdict{}, false
	}

	v = Validate(string(s.buffer), s.stack, s.lex, &s.history)
	if v.Accepted {
		s.accept(v)
		s.feedback = Correct
	} else {
		s.feedback = Incorrect
	}
	s.resolvingUntil = now.Add(s.resolveDelay)
	s.last = v

	log.Debug().
		Str("gameId", s.ID).
		Str("word", v.Word).
		Bool("accepted", v.Accepted).
		Str("reason", string(v.Reason)).
		Int("score", s.board.Score()).
		Msg("word committed")

	// A zero delay resolves on the spot.
	s.poll()
	return v, true
}

// accept applies an accepted verdict: consume tiles, refill, record, score.
func (s *Session) accept(v Verdict) {
	if _, err := s.stack.Take(v.Word); err != nil {
		// Validate already checked the letters.
		log.Error().Err(err).Str("gameId", s.ID).Str("word", v.Word).Msg("take accepted word")
		return
	}
	drawn := tiles.Refill(s.stack, s.bag, s.stackSize)
	s.history.add(v.Word)
	s.board.Add(v.Points)

	if len(drawn) < len(v.Word) {
		log.Info().Str("gameId", s.ID).Int("stack", s.stack.Len()).Msg("bag ran dry")
	}
}

// poll applies everything that became due since the last call and returns
// the current time.
func (s *Session) poll() time.Time {
	now := s.clock.Now()
	if s.feedback != Typing && !now.Before(s.resolvingUntil) {
		s.unlock()
	}
	if n := now.Sub(s.lastTick) / s.scoreTick; n > 0 {
		s.lastTick = s.lastTick.Add(n * s.scoreTick)
		s.board.Advance(int(n))
	}
	return now
}

func (s *Session) unlock() {
	s.feedback = Typing
	s.buffer = s.buffer[:0]
	s.resolvingUntil = time.Time{}
}

func (s *Session) ready() bool { return s.lex != nil && s.lex.Ready() }

func (s *Session) accepting() bool { return s.feedback == Typing && s.ready() }

// State returns the current feedback state.
func (s *Session) State() Feedback {
	s.poll()
	return s.feedback
}

// Locked reports whether input is blocked by pending feedback.
func (s *Session) Locked() bool { return s.State() != Typing }

// Buffer returns the word being typed.
func (s *Session) Buffer() string {
	s.poll()
	return string(s.buffer)
}

// LastVerdict returns the verdict of the most recent commit.
func (s *Session) LastVerdict() Verdict { return s.last }

// Exhausted reports whether bag and stack are both empty. The game goes on;
// there is simply nothing left to spell with.
func (s *Session) Exhausted() bool { return s.bag.Empty() && s.stack.Empty() }

// Snapshot returns what a renderer needs to draw the current frame.
func (s *Session) Snapshot() Snapshot {
	s.poll()
	return Snapshot{
		GameID:       s.ID,
		Buffer:       string(s.buffer),
		State:        s.feedback,
		History:      s.history.Words(),
		Score:        s.board.Score(),
		VisibleScore: s.board.Visible(),
		Stack: lo.Map(s.stack.Tiles(), func(t tiles.Tile, _ int) string {
			return t.String()
		}),
		BagRemaining: s.bag.Len(),
		Ready:        s.ready(),
		Exhausted:    s.Exhausted(),
	}
}
