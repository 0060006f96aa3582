// internal/game/types.go
//
// Core type definitions for the word-stack game engine.
// Defines:
//   - Feedback: what the input row shows (typing/correct/incorrect).
//   - Reason:   why a submitted word was rejected.
//   - Verdict:  the outcome of validating one word.
//   - Snapshot: everything a presentation layer needs to draw a frame.

package game

// Feedback is the state of the input row.
//   - "typing":    accepting keystrokes.
//   - "correct":   the last word was accepted; input locked until resolved.
//   - "incorrect": the last word was rejected; input locked until resolved.
type Feedback string

const (
	Typing    Feedback = "typing"
	Correct   Feedback = "correct"
	Incorrect Feedback = "incorrect"
)

// Reason explains a rejection. The player only ever sees correct/incorrect;
// reasons exist for logs and tests.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonEmpty              Reason = "empty"
	ReasonLettersUnavailable Reason = "letters_unavailable"
	ReasonAlreadyUsed        Reason = "already_used"
	ReasonNotInDictionary    Reason = "not_in_dictionary"
)

// Verdict is the result of validating a word.
type Verdict struct {
	Word     string `json:"word"`
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
	Points   int    `json:"points"` // zero unless accepted
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	GameID       string   `json:"gameId"`
	Buffer       string   `json:"buffer"`
	State        Feedback `json:"state"`
	History      []string `json:"history"` // newest first
	Score        int      `json:"score"`
	VisibleScore int      `json:"visibleScore"`
	Stack        []string `json:"stack"`
	BagRemaining int      `json:"bagRemaining"`
	Ready        bool     `json:"ready"`
	Exhausted    bool     `json:"exhausted"`
}
