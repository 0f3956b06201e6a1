// Package metrics exposes Prometheus counters for game activity.
package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

var (
	// GuessesTotal counts submitted guesses by result.
	GuessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_guesses_total",
		Help: "Guesses submitted, by result",
	}, []string{"result"})

	// GamesFinished counts games that reached won or lost.
	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_games_finished_total",
		Help: "Finished games by outcome",
	}, []string{"outcome"})

	HintsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordle_hints_total",
		Help: "Hints revealed",
	})

	// GamesStarted counts Start/Reset/Configure by mode (free, daily, cli).
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_games_started_total",
		Help: "Games started, by mode",
	}, []string{"mode"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordle_active_sessions",
		Help: "Sessions held in memory",
	})
)

// Result labels for GuessesTotal.
const (
	ResultAccepted        = "accepted"
	ResultInvalidLength   = "invalid_length"
	ResultNotInDictionary = "not_in_dictionary"
	ResultGameOver        = "game_over"
	ResultUnavailable     = "unavailable"
	ResultOther           = "other"
)

// RejectReason maps a SubmitGuess error to a result label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidLength):
		return ResultInvalidLength
	case errors.Is(err, game.ErrNotInDictionary):
		return ResultNotInDictionary
	case errors.Is(err, game.ErrInvalidOperation):
		return ResultGameOver
	case errors.Is(err, game.ErrWordBankUnavailable):
		return ResultUnavailable
	}
	return ResultOther
}

// Sink records session events under mode.
type Sink struct {
	Mode string
}

var _ game.Sink = Sink{}

func (s Sink) Emit(e game.Event) {
	switch e.Type {
	case game.EventStarted:
		GamesStarted.WithLabelValues(s.Mode).Inc()
	case game.EventRejected:
		GuessesTotal.WithLabelValues(RejectReason(e.Err)).Inc()
	case game.EventEvaluated:
		GuessesTotal.WithLabelValues(ResultAccepted).Inc()
		if e.Hint != nil {
			HintsTotal.Inc()
		}
		if e.Outcome != nil {
			outcome := "lost"
			if e.Outcome.Win {
				outcome = "won"
			}
			GamesFinished.WithLabelValues(outcome).Inc()
		}
	}
}
