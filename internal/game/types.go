// internal/game/types.go
//
// Core type definitions for the word-guessing engine.
// Defines:
//   - Word: a normalized guess or secret.
//   - LetterState: per-letter evidence, ordered by strength.
//   - Evaluation: one scored row.
//   - Difficulty: named attempt budgets.
//   - Status / Outcome: session lifecycle.

package game

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// WordLength is the number of letters in every secret and guess.
const WordLength = 5

// Word is an upper-case sequence of letters A–Z.
type Word string

// NormalizeWord trims surrounding whitespace and upper-cases s.
func NormalizeWord(s string) Word {
	return Word(strings.ToUpper(strings.TrimSpace(s)))
}

// Len reports the number of letters in w.
func (w Word) Len() int { return utf8.RuneCountInString(string(w)) }

// IsAlpha reports whether w consists only of A–Z.
func (w Word) IsAlpha() bool {
	for _, r := range w {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// LetterState is the best evidence known about a letter-position pair or a
// keyboard key. Values are ordered: Empty < Absent < Present < Correct.
type LetterState int

const (
	Empty LetterState = iota
	Absent
	Present
	Correct
)

var letterStateNames = [...]string{"empty", "absent", "present", "correct"}

func (s LetterState) String() string {
	if s < Empty || s > Correct {
		return "unknown"
	}
	return letterStateNames[s]
}

// MarshalText encodes the state as its lower-case name.
func (s LetterState) MarshalText() ([]byte, error) {
	if s < Empty || s > Correct {
		return nil, errors.Newf("invalid letter state %d", int(s))
	}
	return []byte(letterStateNames[s]), nil
}

// UnmarshalText decodes a lower-case state name.
func (s *LetterState) UnmarshalText(b []byte) error {
	for i, name := range letterStateNames {
		if name == string(b) {
			*s = LetterState(i)
			return nil
		}
	}
	return errors.Newf("invalid letter state %q", string(b))
}

// Evaluation is the scored result of one guess, one entry per position.
type Evaluation []LetterState

// Solved reports whether every position is Correct.
func (e Evaluation) Solved() bool {
	if len(e) == 0 {
		return false
	}
	for _, s := range e {
		if s != Correct {
			return false
		}
	}
	return true
}

// Difficulty selects the attempt budget of a session.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var maxAttempts = map[Difficulty]int{
	Easy:   8,
	Medium: 6,
	Hard:   4,
}

// ParseDifficulty maps a name to a Difficulty. Empty input means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return Medium, nil
	}
	if _, ok := maxAttempts[d]; !ok {
		return "", errors.Wrapf(ErrUnknownDifficulty, "%q", s)
	}
	return d, nil
}

// MaxAttempts returns the number of guesses allowed at difficulty d.
// Unknown values fall back to the Medium budget.
func (d Difficulty) MaxAttempts() int {
	if n, ok := maxAttempts[d]; ok {
		return n
	}
	return maxAttempts[Medium]
}

// Status is the coarse state of a session.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Outcome is set once a session finishes.
type Outcome struct {
	Win bool `json:"win"`
}

// Hint reveals one secret letter at a 1-based position.
type Hint struct {
	Position int    `json:"position"`
	Letter   string `json:"letter"`
}
