// internal/daily/daily.go
//
// Deterministic "word of the day" selection.
// Every player gets the same secret on the same UTC date: the date key is
// run through HMAC-SHA256 with a server salt and the first 8 bytes seed the
// PRNG handed to the WordBank.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// Category used for daily games; empty means the whole vocabulary.
const Category = ""

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a stable seed from HMAC(salt, YYYY-MM-DD).
func Seed(t time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// Source returns the PRNG for the daily game on t's date.
func Source(t time.Time, salt string) *rand.Rand {
	return game.NewSeededRand(Seed(t, salt))
}

// NewSession starts the daily game at Medium difficulty.
func NewSession(bank game.WordBank, now time.Time, salt string, opts ...game.Option) (*game.Session, error) {
	opts = append(opts, game.WithRand(Source(now, salt)))
	s := game.NewSession(bank, opts...)
	if err := s.Start(Category, game.Medium); err != nil {
		return nil, err
	}
	return s, nil
}
