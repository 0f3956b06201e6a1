package game

import (
	"math/rand/v2"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBank struct {
	secret Word
	err    error
	valid  map[Word]bool
	picks  []string // categories asked for
}

func newStubBank(secret Word, dict ...Word) *stubBank {
	b := &stubBank{secret: secret, valid: map[Word]bool{secret: true}}
	for _, w := range dict {
		b.valid[w] = true
	}
	return b
}

func (b *stubBank) PickSecret(category string, _ *rand.Rand) (Word, error) {
	b.picks = append(b.picks, category)
	if b.err != nil {
		return "", b.err
	}
	return b.secret, nil
}

func (b *stubBank) IsValid(w Word) bool { return b.valid[w] }

// categoryBank is a stubBank that knows its categories.
type categoryBank struct {
	*stubBank
	known map[string]bool
}

func (b categoryBank) HasCategory(c string) bool { return b.known[c] }

type recorder struct{ events []Event }

func (r *recorder) Emit(e Event) { r.events = append(r.events, e) }

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func startedSession(t *testing.T, bank WordBank, d Difficulty, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithRand(NewSeededRand(7))}, opts...)
	s := NewSession(bank, opts...)
	require.NoError(t, s.Start("", d))
	return s
}

func TestSession_LossAfterMaxAttempts(t *testing.T) {
	guesses := []Word{"MANGO", "APPLE", "PLANT", "CLOUD", "STONE", "CHAIR"}
	s := startedSession(t, newStubBank("BERRY", guesses...), Medium)

	for i, g := range guesses {
		res, err := s.SubmitGuess(string(g))
		require.NoError(t, err, "guess %d", i)
		assert.Equal(t, i, res.Attempt)
		if i < len(guesses)-1 {
			assert.Equal(t, StatusPlaying, res.Status)
			assert.Nil(t, res.Outcome)
		}
	}

	assert.Equal(t, StatusLost, s.Status())
	assert.Equal(t, 6, s.Attempt())
	snap := s.Snapshot()
	require.NotNil(t, snap.Outcome)
	assert.False(t, snap.Outcome.Win)
	assert.Equal(t, Word("BERRY"), snap.Secret)
	assert.Equal(t, 0, snap.Score)

	_, err := s.SubmitGuess("BERRY")
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, 6, s.Attempt())
}

func TestSession_WinScoresAndHints(t *testing.T) {
	bank := newStubBank("APPLE", "MANGO", "GRAPE", "AMPLE")
	rec := &recorder{}
	s := startedSession(t, bank, Medium, WithSink(rec))

	res, err := s.SubmitGuess("mango")
	require.NoError(t, err)
	assert.Nil(t, res.Hint, "no hint after the first attempt")

	res, err = s.SubmitGuess("GRAPE")
	require.NoError(t, err)
	require.NotNil(t, res.Hint)
	assert.Contains(t, []int{1, 2, 3, 4}, res.Hint.Position, "position 5 is already confirmed")
	assert.Equal(t, string("APPLE"[res.Hint.Position-1]), res.Hint.Letter)

	// AMPLE confirms everything but position 2.
	res, err = s.SubmitGuess("AMPLE")
	require.NoError(t, err)
	require.NotNil(t, res.Hint)
	assert.Equal(t, Hint{Position: 2, Letter: "P"}, *res.Hint)
	assert.Equal(t, 2, s.Hints())

	res, err = s.SubmitGuess("APPLE")
	require.NoError(t, err)
	assert.Equal(t, StatusWon, res.Status)
	require.NotNil(t, res.Outcome)
	assert.True(t, res.Outcome.Win)
	assert.Nil(t, res.Hint)
	assert.Equal(t, 100-10*(3+2), res.Gained)
	assert.Equal(t, 50, s.Score())

	var hints int
	for _, e := range rec.events {
		if e.Hint != nil {
			hints++
		}
	}
	assert.Equal(t, 2, hints, "one hint per qualifying attempt")
	assert.Equal(t, []EventType{EventStarted, EventEvaluated, EventEvaluated, EventEvaluated, EventEvaluated}, rec.types())
}

func TestSession_FirstGuessWin(t *testing.T) {
	s := startedSession(t, newStubBank("CRANE"), Hard)
	res, err := s.SubmitGuess("crane")
	require.NoError(t, err)
	assert.Equal(t, 100, res.Gained)
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, 1, s.Attempt())
}

func TestSession_ScoreNeverNegative(t *testing.T) {
	dict := []Word{"AAAAB", "AAABA", "AABAA", "ABAAA", "BAAAA", "BBBBB", "CCCCC"}
	s := startedSession(t, newStubBank("ZZZZZ", dict...), Easy)
	for _, g := range dict {
		_, err := s.SubmitGuess(string(g))
		require.NoError(t, err)
	}
	res, err := s.SubmitGuess("ZZZZZ")
	require.NoError(t, err)
	assert.Equal(t, 6, s.Hints())
	assert.Equal(t, 0, res.Gained, "100 - 10*(7+6) clamps to zero")
	assert.Equal(t, StatusWon, s.Status())
}

func TestSession_RejectionsDoNotConsumeAttempts(t *testing.T) {
	rec := &recorder{}
	s := startedSession(t, newStubBank("BERRY", "MANGO"), Medium, WithSink(rec))

	_, err := s.SubmitGuess("XYZZY")
	assert.ErrorIs(t, err, ErrNotInDictionary)
	assert.Equal(t, 0, s.Attempt())

	_, err = s.SubmitGuess("MANGOS")
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = s.SubmitGuess("")
	assert.ErrorIs(t, err, ErrInvalidLength)
	assert.Equal(t, 0, s.Attempt())

	snap := s.Snapshot()
	assert.Empty(t, snap.Keys)
	for _, g := range snap.Guesses {
		assert.Empty(t, g)
	}

	_, err = s.SubmitGuess("MANGO")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Attempt())

	assert.Equal(t, []EventType{EventStarted, EventRejected, EventRejected, EventRejected, EventEvaluated}, rec.types())
	assert.ErrorIs(t, rec.events[1].Err, ErrNotInDictionary)
}

func TestSession_WordBankUnavailable(t *testing.T) {
	bank := newStubBank("BERRY", "MANGO")
	bank.err = errors.New("disk on fire")

	s := NewSession(bank)
	err := s.Start("FRUITS", Medium)
	assert.ErrorIs(t, err, ErrWordBankUnavailable)
	assert.False(t, s.Started())
	assert.Equal(t, StatusPlaying, s.Status())

	_, err = s.SubmitGuess("MANGO")
	assert.ErrorIs(t, err, ErrWordBankUnavailable)

	bank.err = nil
	require.NoError(t, s.Start("FRUITS", Medium))
	_, err = s.SubmitGuess("MANGO")
	require.NoError(t, err)

	// A failing reset leaves the running game untouched.
	bank.err = errors.New("gone again")
	assert.ErrorIs(t, s.Reset(), ErrWordBankUnavailable)
	assert.Equal(t, 1, s.Attempt())
	assert.Equal(t, Word("MANGO"), s.Snapshot().Guesses[0])
}

func TestSession_NilBank(t *testing.T) {
	s := NewSession(nil)
	assert.ErrorIs(t, s.Start("", Medium), ErrWordBankUnavailable)
}

func TestSession_ResetAndConfigure(t *testing.T) {
	bank := newStubBank("CRANE", "MANGO")

	t.Run("score resets by default", func(t *testing.T) {
		s := startedSession(t, bank, Medium)
		_, err := s.SubmitGuess("CRANE")
		require.NoError(t, err)
		require.Equal(t, 100, s.Score())

		require.NoError(t, s.Reset())
		assert.Equal(t, 0, s.Score())
		assert.Equal(t, StatusPlaying, s.Status())
		assert.Equal(t, 0, s.Attempt())
		assert.Nil(t, s.Snapshot().Outcome)
	})

	t.Run("score kept on reset when configured", func(t *testing.T) {
		s := startedSession(t, bank, Medium, WithKeepScoreOnReset(true))
		_, err := s.SubmitGuess("CRANE")
		require.NoError(t, err)

		require.NoError(t, s.Reset())
		assert.Equal(t, 100, s.Score())
		_, err = s.SubmitGuess("CRANE")
		require.NoError(t, err)
		assert.Equal(t, 200, s.Score())

		require.NoError(t, s.Configure("fruits", Hard))
		assert.Equal(t, 0, s.Score())
		assert.Equal(t, "FRUITS", s.Category())
		assert.Equal(t, Hard, s.Difficulty())
		assert.Equal(t, 4, s.Snapshot().MaxAttempts)
	})

	t.Run("configure mid-game restarts", func(t *testing.T) {
		s := startedSession(t, bank, Medium)
		_, err := s.SubmitGuess("MANGO")
		require.NoError(t, err)
		require.NoError(t, s.Configure("", Easy))
		assert.Equal(t, 0, s.Attempt())
		assert.Empty(t, s.Snapshot().Keys)
		assert.Equal(t, 8, s.Snapshot().MaxAttempts)
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		s := startedSession(t, bank, Medium)
		assert.ErrorIs(t, s.Configure("", Difficulty("brutal")), ErrUnknownDifficulty)
		assert.Equal(t, Medium, s.Difficulty())
	})
}

func TestSession_HardLosesAfterFour(t *testing.T) {
	s := startedSession(t, newStubBank("CRANE", "MANGO"), Hard)
	for i := 0; i < 4; i++ {
		_, err := s.SubmitGuess("MANGO")
		require.NoError(t, err)
	}
	assert.Equal(t, StatusLost, s.Status())
	assert.Equal(t, 4, s.Attempt())
}

func TestSession_NoHintWhenEverythingConfirmed(t *testing.T) {
	// Positions get confirmed across different rows without a single solving row.
	s := startedSession(t, newStubBank("ABCDE", "ABCXY", "XYCDE", "QQQQQ"), Easy)

	_, err := s.SubmitGuess("ABCXY")
	require.NoError(t, err)
	res, err := s.SubmitGuess("XYCDE")
	require.NoError(t, err)
	assert.Nil(t, res.Hint)
	assert.Equal(t, 0, s.Hints())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.Snapshot().Confirmed)
}

func TestSession_Snapshot(t *testing.T) {
	s := startedSession(t, newStubBank("BERRY", "MANGO"), Medium)
	_, err := s.SubmitGuess("MANGO")
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Secret, "secret hidden while playing")
	require.Len(t, snap.Rows, 6)
	assert.Equal(t, Evaluation{Absent, Absent, Absent, Absent, Absent}, snap.Rows[0])
	assert.Equal(t, make(Evaluation, 5), snap.Rows[1])
	assert.Equal(t, Absent, snap.Keys["M"])

	// Mutating the copy must not affect the session.
	snap.Keys["M"] = Correct
	snap.Rows[0][0] = Correct
	assert.Equal(t, Absent, s.Snapshot().Keys["M"])
	assert.Equal(t, Absent, s.Snapshot().Rows[0][0])
}

func TestSession_CategoryPassedToBank(t *testing.T) {
	bank := newStubBank("APPLE")
	s := NewSession(bank)
	require.NoError(t, s.Start(" fruits ", Medium))
	assert.Equal(t, []string{"FRUITS"}, bank.picks)
	require.NoError(t, s.Reset())
	assert.Equal(t, []string{"FRUITS", "FRUITS"}, bank.picks)
}

func TestSession_UnknownCategoryRecordedAsAll(t *testing.T) {
	bank := categoryBank{stubBank: newStubBank("CRANE"), known: map[string]bool{"FRUITS": true}}
	rec := &recorder{}
	s := NewSession(bank, WithRand(NewSeededRand(1)), WithSink(rec))

	require.NoError(t, s.Start("dinosaurs", Hard))
	assert.Equal(t, "", s.Category())
	assert.Equal(t, "", s.Snapshot().Category)
	assert.Equal(t, "", rec.events[0].Category)

	require.NoError(t, s.Reset())
	assert.Equal(t, []string{"", ""}, bank.picks, "unknown category never reaches the bank")

	require.NoError(t, s.Configure("fruits", Hard))
	assert.Equal(t, "FRUITS", s.Category())
}
