package game

import "github.com/cockroachdb/errors"

// Conditions reported by Session operations. All are recoverable: the
// operation that returned one left the session untouched.
var (
	ErrInvalidLength       = errors.New("invalid length")
	ErrNotInDictionary     = errors.New("not in word list")
	ErrWordBankUnavailable = errors.New("word bank unavailable")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrUnknownDifficulty   = errors.New("unknown difficulty")
)
