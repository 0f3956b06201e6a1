// internal/game/engine.go
//
// Session state machine for a single game.
// Responsibilities:
//   - Obtain a secret from the WordBank for a category and difficulty.
//   - Validate guesses (length, dictionary) without consuming attempts.
//   - Score guesses, merge keyboard state, detect win/loss.
//   - Award score on a win and reveal hints while the game continues.
//
// A Session is owned by one caller at a time; it is not safe for concurrent
// use. Evaluate and MergeKeyState are pure and may be shared freely.

package game

import (
	crand "crypto/rand"
	"math/rand/v2"
	"strings"

	"github.com/cockroachdb/errors"
)

// WordBank supplies secrets and answers dictionary membership.
type WordBank interface {
	// PickSecret returns a word from category, or from the full vocabulary
	// when category is empty or unknown.
	PickSecret(category string, rng *rand.Rand) (Word, error)
	// IsValid reports whether w is any known word.
	IsValid(w Word) bool
}

// CategoryChecker is implemented by word banks that can report whether a
// category exists. Sessions on such banks record an unknown category as ""
// to match the vocabulary PickSecret actually draws from.
type CategoryChecker interface {
	HasCategory(category string) bool
}

const (
	winBase    = 100
	winPenalty = 10
)

// Result describes the effect of one accepted guess.
type Result struct {
	Attempt int         `json:"attempt"` // 0-based slot that was filled
	Guess   Word        `json:"guess"`
	Row     Evaluation  `json:"row"`
	Keys    KeyStateMap `json:"keys"`
	Score   int         `json:"score"`
	Gained  int         `json:"gained"`
	Status  Status      `json:"status"`
	Outcome *Outcome    `json:"outcome,omitempty"`
	Hint    *Hint       `json:"hint,omitempty"`
}

// Session drives one game from Start to Won or Lost.
type Session struct {
	bank      WordBank
	rng       *rand.Rand
	sink      Sink
	keepScore bool

	started    bool
	category   string
	difficulty Difficulty
	secret     Word
	guesses    []Word
	rows       []Evaluation
	attempt    int
	keys       KeyStateMap
	outcome    *Outcome
	score      int
	hints      int
	status     Status
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the pseudo-random source used for secrets and hints.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSink sets the receiver of session events.
func WithSink(sink Sink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithKeepScoreOnReset carries the score over when Reset is called.
// Start and Configure always zero it.
func WithKeepScoreOnReset(keep bool) Option {
	return func(s *Session) { s.keepScore = keep }
}

// NewSession constructs an unstarted session. Call Start before guessing.
func NewSession(bank WordBank, opts ...Option) *Session {
	s := &Session{
		bank:       bank,
		sink:       NopSink{},
		difficulty: Medium,
		status:     StatusPlaying,
		keys:       KeyStateMap{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newRand()
	}
	if s.sink == nil {
		s.sink = NopSink{}
	}
	return s
}

// newRand seeds a ChaCha8 generator from crypto/rand.
func newRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededRand returns a PCG generator for a fixed seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Start begins a new game. The secret is picked before anything else
// changes, so a WordBank failure leaves the session as it was.
func (s *Session) Start(category string, d Difficulty) error {
	return s.start(category, d, 0)
}

// Reset starts a new game with the current category and difficulty.
func (s *Session) Reset() error {
	score := 0
	if s.keepScore {
		score = s.score
	}
	return s.start(s.category, s.difficulty, score)
}

// Configure switches category and difficulty; it always restarts the game.
func (s *Session) Configure(category string, d Difficulty) error {
	return s.start(category, d, 0)
}

func (s *Session) start(category string, d Difficulty, score int) error {
	if _, ok := maxAttempts[d]; !ok {
		return errors.Wrapf(ErrUnknownDifficulty, "%q", string(d))
	}
	if s.bank == nil {
		return errors.Wrap(ErrWordBankUnavailable, "no word bank configured")
	}
	category = strings.ToUpper(strings.TrimSpace(category))
	if cc, ok := s.bank.(CategoryChecker); ok && category != "" && !cc.HasCategory(category) {
		category = ""
	}
	secret, err := s.bank.PickSecret(category, s.rng)
	if err != nil {
		return errors.Wrapf(ErrWordBankUnavailable, "picking secret: %v", err)
	}
	secret = NormalizeWord(string(secret))
	if secret.Len() != WordLength || !secret.IsAlpha() {
		return errors.Wrapf(ErrWordBankUnavailable, "word bank returned unusable secret %q", string(secret))
	}

	n := d.MaxAttempts()
	s.started = true
	s.category = category
	s.difficulty = d
	s.secret = secret
	s.guesses = make([]Word, n)
	s.rows = make([]Evaluation, n)
	s.attempt = 0
	s.keys = KeyStateMap{}
	s.outcome = nil
	s.score = score
	s.hints = 0
	s.status = StatusPlaying

	s.emit(Event{Type: EventStarted})
	return nil
}

// SubmitGuess scores candidate against the secret and advances the game.
// Rejected guesses return an error and leave the session unchanged.
func (s *Session) SubmitGuess(candidate string) (*Result, error) {
	guess := NormalizeWord(candidate)
	if err := s.admit(guess); err != nil {
		s.emit(Event{Type: EventRejected, Guess: guess, Err: err})
		return nil, err
	}

	i := s.attempt
	row := Evaluate(s.secret, guess)
	s.guesses[i] = guess
	s.rows[i] = row
	s.keys.Apply(guess, row)

	res := &Result{Attempt: i, Guess: guess, Row: row}
	switch {
	case row.Solved():
		res.Gained = max(winBase-winPenalty*(i+s.hints), 0)
		s.score += res.Gained
		s.finish(true)
	case i+1 == len(s.rows):
		s.finish(false)
	case i >= 1:
		res.Hint = s.pickHint()
	}
	s.attempt++

	res.Keys = s.keys.Clone()
	res.Score = s.score
	res.Status = s.status
	res.Outcome = s.outcomeCopy()

	s.emit(Event{
		Type:    EventEvaluated,
		Attempt: i,
		Guess:   guess,
		Row:     row,
		Gained:  res.Gained,
		Hint:    res.Hint,
	})
	return res, nil
}

func (s *Session) admit(guess Word) error {
	switch {
	case !s.started:
		return errors.Wrap(ErrWordBankUnavailable, "no secret assigned")
	case s.status.Terminal():
		return errors.Wrapf(ErrInvalidOperation, "game already %s", s.status)
	case guess.Len() != s.secret.Len():
		return errors.Wrapf(ErrInvalidLength, "%d letters, want %d", guess.Len(), s.secret.Len())
	case !s.bank.IsValid(guess):
		return errors.Wrapf(ErrNotInDictionary, "%q", string(guess))
	}
	return nil
}

func (s *Session) finish(win bool) {
	s.outcome = &Outcome{Win: win}
	if win {
		s.status = StatusWon
	} else {
		s.status = StatusLost
	}
}

// unconfirmed lists 0-based secret positions that no evaluated row has
// marked Correct.
func (s *Session) unconfirmed() []int {
	confirmed := s.confirmedMask()
	var out []int
	for i, ok := range confirmed {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

func (s *Session) confirmedMask() []bool {
	mask := make([]bool, s.secret.Len())
	for _, row := range s.rows {
		for i, st := range row {
			if st == Correct && i < len(mask) {
				mask[i] = true
			}
		}
	}
	return mask
}

func (s *Session) pickHint() *Hint {
	open := s.unconfirmed()
	if len(open) == 0 {
		return nil
	}
	p := open[s.rng.IntN(len(open))]
	s.hints++
	return &Hint{Position: p + 1, Letter: string([]rune(string(s.secret))[p])}
}

func (s *Session) outcomeCopy() *Outcome {
	if s.outcome == nil {
		return nil
	}
	o := *s.outcome
	return &o
}

func (s *Session) emit(e Event) {
	e.Keys = s.keys.Clone()
	e.Score = s.score
	e.Status = s.status
	e.Outcome = s.outcomeCopy()
	e.Category = s.category
	if e.Type != EventEvaluated {
		e.Attempt = s.attempt
	}
	s.sink.Emit(e)
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Started reports whether a secret has been assigned.
func (s *Session) Started() bool { return s.started }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Attempt returns the 0-based index of the next guess slot.
func (s *Session) Attempt() int { return s.attempt }

// Hints returns the number of hints issued in the current game.
func (s *Session) Hints() int { return s.hints }

// Category returns the active category ("" for the full vocabulary).
func (s *Session) Category() string { return s.category }

// Difficulty returns the active difficulty.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// State is a point-in-time copy of a session for presentation.
type State struct {
	Category    string       `json:"category"`
	Difficulty  Difficulty   `json:"difficulty"`
	MaxAttempts int          `json:"maxAttempts"`
	Attempt     int          `json:"attempt"`
	Guesses     []Word       `json:"guesses"`
	Rows        []Evaluation `json:"rows"`
	Keys        KeyStateMap  `json:"keys"`
	Confirmed   []int        `json:"confirmed"` // 1-based positions known Correct
	Score       int          `json:"score"`
	Hints       int          `json:"hints"`
	Status      Status       `json:"status"`
	Outcome     *Outcome     `json:"outcome,omitempty"`
	Secret      Word         `json:"secret,omitempty"` // only once terminal
}

// Snapshot copies the session state. Unfilled rows are reported as Empty.
func (s *Session) Snapshot() State {
	st := State{
		Category:    s.category,
		Difficulty:  s.difficulty,
		MaxAttempts: len(s.rows),
		Attempt:     s.attempt,
		Guesses:     append([]Word(nil), s.guesses...),
		Rows:        make([]Evaluation, len(s.rows)),
		Keys:        s.keys.Clone(),
		Confirmed:   []int{},
		Score:       s.score,
		Hints:       s.hints,
		Status:      s.status,
		Outcome:     s.outcomeCopy(),
	}
	for i, row := range s.rows {
		if row == nil {
			st.Rows[i] = make(Evaluation, s.secret.Len())
			continue
		}
		st.Rows[i] = append(Evaluation(nil), row...)
	}
	for i, ok := range s.confirmedMask() {
		if ok {
			st.Confirmed = append(st.Confirmed, i+1)
		}
	}
	if s.status.Terminal() {
		st.Secret = s.secret
	}
	return st
}
