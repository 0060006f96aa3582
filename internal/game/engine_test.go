package game

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordstack/internal/tiles"
	"github.com/robalobadob/wordstack/internal/words"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock { return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)} }

// toggleLexicon lets a test flip readiness.
type toggleLexicon struct {
	ready bool
	dict  *words.Dictionary
}

func (l *toggleLexicon) Ready() bool { return l.ready }
func (l *toggleLexicon) Contains(w string) bool { return l.ready && l.dict.Contains(w) }

// scripted builds a session whose bag deals letters in order: the first
// seven form the stack.
func scripted(t *testing.T, clock *fakeClock, bag string, dict ...string) *Session {
	t.Helper()
	s := New(words.Preloaded(words.New(dict...)),
		WithID("test"),
		WithClock(clock),
		WithBag(tiles.NewBagOf(bag, tiles.Ordered)),
	)
	return s
}

func typeWord(s *Session, w string) {
	for _, r := range w {
		s.Type(r)
	}
}

func TestNewSessionDealsFullStack(t *testing.T) {
	s := New(words.Preloaded(words.New("cat")))
	snap := s.Snapshot()

	assert.NotEmpty(t, snap.GameID)
	assert.Len(t, snap.Stack, tiles.DefaultStackSize)
	assert.Equal(t, tiles.English.Size()-tiles.DefaultStackSize, snap.BagRemaining)
	assert.Equal(t, Typing, snap.State)
	assert.Empty(t, snap.History)
	assert.True(t, snap.Ready)
}

func TestScenarioAcceptWord(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "catxqzreeio", "cat")
	require.Equal(t, []string{"c", "a", "t", "x", "q", "z", "r"}, s.Snapshot().Stack)

	typeWord(s, "cat")
	v, ok := s.Commit()
	require.True(t, ok)
	assert.True(t, v.Accepted)
	assert.Equal(t, 5, v.Points)

	snap := s.Snapshot()
	assert.Equal(t, Correct, snap.State)
	assert.Equal(t, "cat", snap.Buffer, "buffer stays visible during feedback")
	assert.Equal(t, 5, snap.Score)
	assert.Equal(t, []string{"cat"}, snap.History)
	assert.Equal(t, []string{"x", "q", "z", "r", "e", "e", "i"}, snap.Stack)
	assert.Equal(t, 1, snap.BagRemaining)
}

func TestScenarioRepeatWordRejected(t *testing.T) {
	clock := newClock()
	// the refill deals c, a, t again so only the history check can fail
	s := scripted(t, clock, "catxqzrcat", "cat")

	typeWord(s, "cat")
	v, _ := s.Commit()
	require.True(t, v.Accepted)
	clock.Advance(DefaultResolveDelay)

	before := s.Snapshot()
	typeWord(s, "cat")
	v, ok := s.Commit()
	require.True(t, ok)
	assert.False(t, v.Accepted)
	assert.Equal(t, ReasonAlreadyUsed, v.Reason)

	after := s.Snapshot()
	assert.Equal(t, Incorrect, after.State)
	assert.Equal(t, before.Stack, after.Stack)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.History, after.History)
}

func TestScenarioRepeatedLetters(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "aabcdef", "aab")
	typeWord(s, "aab")
	v, _ := s.Commit()
	assert.True(t, v.Accepted)

	clock = newClock()
	s = scripted(t, clock, "abcdefg", "aac")
	typeWord(s, "aac")
	v, _ = s.Commit()
	assert.False(t, v.Accepted)
	assert.Equal(t, ReasonLettersUnavailable, v.Reason)
}

func TestScenarioDictionaryNotReady(t *testing.T) {
	clock := newClock()
	lex := &toggleLexicon{ready: false, dict: words.New("cat")}
	s := New(lex, WithClock(clock), WithBag(tiles.NewBagOf("catxqzr", tiles.Ordered)))

	assert.False(t, s.Type('c'), "typing is ignored before the dictionary loads")
	_, ok := s.Commit()
	assert.False(t, ok)
	assert.Equal(t, Typing, s.State())

	lex.ready = true
	typeWord(s, "ca")
	lex.ready = false
	_, ok = s.Commit()
	assert.False(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, "ca", snap.Buffer)
	assert.Equal(t, Typing, snap.State)
	assert.False(t, snap.Ready)
	assert.Empty(t, snap.History)
	assert.Equal(t, 0, snap.Score)
}

func TestResolvingLocksInputUntilDelay(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "catxqzr", "cat")
	typeWord(s, "dog") // not on the stack
	v, ok := s.Commit()
	require.True(t, ok)
	require.False(t, v.Accepted)

	assert.True(t, s.Locked())
	assert.False(t, s.Type('a'))
	assert.False(t, s.Delete())
	_, ok = s.Commit()
	assert.False(t, ok, "commit during feedback is ignored")

	clock.Advance(DefaultResolveDelay - time.Millisecond)
	assert.Equal(t, Incorrect, s.State())
	assert.Equal(t, "dog", s.Buffer())

	clock.Advance(time.Millisecond)
	assert.Equal(t, Typing, s.State())
	assert.Equal(t, "", s.Buffer())
	assert.True(t, s.Type('c'))
}

func TestZeroResolveDelay(t *testing.T) {
	clock := newClock()
	s := New(words.Preloaded(words.New("cat")),
		WithClock(clock),
		WithBag(tiles.NewBagOf("catxqzr", tiles.Ordered)),
		WithResolveDelay(0),
	)
	typeWord(s, "cat")
	v, ok := s.Commit()
	require.True(t, ok)
	assert.True(t, v.Accepted)
	assert.Equal(t, Typing, s.State())
	assert.Equal(t, "", s.Buffer())
}

func TestPressMapsHostKeys(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "catxqzr", "cat")

	assert.True(t, s.Press("C"))
	assert.True(t, s.Press("a"))
	assert.True(t, s.Press("x"))
	assert.False(t, s.Press("Shift"))
	assert.False(t, s.Press("1"))
	assert.False(t, s.Press(" "))
	assert.True(t, s.Press(KeyBackspace))
	assert.True(t, s.Press("t"))
	assert.Equal(t, "cat", s.Buffer())

	assert.True(t, s.Press(KeyEnter))
	assert.True(t, s.LastVerdict().Accepted)
}

func TestDeleteOnEmptyBuffer(t *testing.T) {
	s := scripted(t, newClock(), "catxqzr", "cat")
	assert.False(t, s.Delete())
}

func TestEmptyCommitIsRejected(t *testing.T) {
	s := scripted(t, newClock(), "catxqzr", "cat", "")
	v, ok := s.Commit()
	require.True(t, ok)
	assert.False(t, v.Accepted)
	assert.Equal(t, ReasonEmpty, v.Reason)
	assert.Equal(t, Incorrect, s.State())
}

func TestVisibleScoreChasesScore(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "catxqzr", "zax")
	typeWord(s, "zax") // 10 + 1 + 8
	v, _ := s.Commit()
	require.Equal(t, 19, v.Points)

	prev := s.Snapshot().VisibleScore
	assert.Equal(t, 0, prev)
	for i := 0; i < 30; i++ {
		clock.Advance(DefaultScoreTick)
		snap := s.Snapshot()
		assert.LessOrEqual(t, snap.VisibleScore, snap.Score)
		if prev < snap.Score {
			assert.Equal(t, prev+1, snap.VisibleScore)
		} else {
			assert.Equal(t, prev, snap.VisibleScore)
		}
		prev = snap.VisibleScore
	}
	assert.Equal(t, 19, prev)
}

func TestVisibleScoreCatchesUpAfterIdle(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "catxqzr", "cat")
	typeWord(s, "cat")
	s.Commit()

	clock.Advance(time.Hour)
	snap := s.Snapshot()
	assert.Equal(t, 5, snap.VisibleScore)
	assert.Equal(t, 5, snap.Score)
}

func TestExhaustedBagIsNotGameOver(t *testing.T) {
	clock := newClock()
	s := scripted(t, clock, "at", "at")
	require.Equal(t, []string{"a", "t"}, s.Snapshot().Stack)

	typeWord(s, "at")
	v, _ := s.Commit()
	require.True(t, v.Accepted)
	assert.True(t, s.Exhausted())

	clock.Advance(DefaultResolveDelay)
	typeWord(s, "a")
	v, ok := s.Commit()
	require.True(t, ok)
	assert.Equal(t, ReasonLettersUnavailable, v.Reason)
	assert.True(t, s.Snapshot().Exhausted)
}

// Random play never produces duplicate history entries and never loses
// score.
func TestRandomPlayStaysConsistent(t *testing.T) {
	clock := newClock()
	lex := words.NewLoader(words.EmbeddedSource{})
	require.NoError(t, lex.Load(context.Background()))

	rng := rand.New(rand.NewPCG(5, 6))
	s := New(lex, WithClock(clock), WithBag(tiles.NewBag(tiles.English, rng)))
	candidates := []string{"a", "at", "an", "ant", "tan", "eat", "tea", "ate", "net", "ten", "ore", "roe", "one", "toe", "rat", "tar", "art", "oat", "ion", "in", "", "zzz"}

	score := 0
	for i := 0; i < 400; i++ {
		typeWord(s, candidates[rng.IntN(len(candidates))])
		_, ok := s.Commit()
		require.True(t, ok)

		snap := s.Snapshot()
		assert.GreaterOrEqual(t, snap.Score, score)
		assert.LessOrEqual(t, snap.VisibleScore, snap.Score)
		score = snap.Score
		assert.Len(t, lo.Uniq(snap.History), len(snap.History))
		assert.LessOrEqual(t, len(snap.Stack), tiles.DefaultStackSize)

		clock.Advance(DefaultResolveDelay)
	}
	assert.NotEmpty(t, s.Snapshot().History)
}
