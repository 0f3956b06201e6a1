// internal/words/words.go
//
// WordBank implementation backed by category word lists.
//
// Word Lists:
//   - categories: secret candidates grouped by name (FRUITS, ANIMALS, ...).
//   - vocabulary: union of all categories; secrets for "no category".
//   - dictionary: vocabulary ∪ extra allowed guesses; used by IsValid.
//
// Sources:
//   - Embedded(): lists compiled in from the assets package.
//   - FromDir(dir): the same layout on disk (WORDS_DIR).
//   - Load(ctx, db): the SQLite words table (see db.go).
//
// Constraints:
//   • Words must be 5 letters A–Z; anything else is dropped.
//   • Lists are upper-cased, de-duplicated, and sorted so that a seeded
//     PRNG always picks the same word.

package words

import (
	"math/rand/v2"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// Bank is an immutable, concurrency-safe game.WordBank.
type Bank struct {
	categories map[string][]game.Word
	names      []string
	vocabulary []game.Word
	dictionary map[game.Word]struct{}
}

var (
	_ game.WordBank        = (*Bank)(nil)
	_ game.CategoryChecker = (*Bank)(nil)
)

// New builds a Bank from category lists plus extra valid guesses.
func New(categories map[string][]string, extra []string) *Bank {
	b := &Bank{
		categories: make(map[string][]game.Word, len(categories)),
		dictionary: make(map[game.Word]struct{}),
	}
	all := map[game.Word]struct{}{}
	for name, list := range categories {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		ws := normalize(list)
		if len(ws) == 0 {
			continue
		}
		b.categories[name] = ws
		b.names = append(b.names, name)
		for _, w := range ws {
			all[w] = struct{}{}
			b.dictionary[w] = struct{}{}
		}
	}
	for _, w := range normalize(extra) {
		b.dictionary[w] = struct{}{}
	}
	sort.Strings(b.names)
	b.vocabulary = sortedKeys(all)
	return b
}

// Embedded returns the Bank compiled into the binary.
func Embedded() (*Bank, error) {
	cats, err := assets.Categories()
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded categories")
	}
	extra, err := assets.AllowedList()
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded allowed list")
	}
	return New(cats, extra), nil
}

// FromDir reads <dir>/categories/*.txt and an optional <dir>/allowed.txt.
func FromDir(dir string) (*Bank, error) {
	fsys := os.DirFS(dir)
	cats, err := assets.CategoryLists(fsys, "categories")
	if err != nil {
		return nil, errors.Wrapf(err, "reading categories from %s", dir)
	}
	var extra []string
	if f, err := fsys.Open("allowed.txt"); err == nil {
		extra, err = assets.ReadLines(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s/allowed.txt", dir)
		}
	}
	b := New(cats, extra)
	if len(b.vocabulary) == 0 {
		return nil, errors.Wrapf(game.ErrWordBankUnavailable, "no words under %s", dir)
	}
	return b, nil
}

// PickSecret draws a word from category, falling back to the full
// vocabulary when category is empty or unknown.
func (b *Bank) PickSecret(category string, rng *rand.Rand) (game.Word, error) {
	pool := b.vocabulary
	if list, ok := b.categories[strings.ToUpper(strings.TrimSpace(category))]; ok {
		pool = list
	}
	if len(pool) == 0 {
		return "", errors.Wrap(game.ErrWordBankUnavailable, "vocabulary is empty")
	}
	if rng == nil {
		return "", errors.New("words: nil random source")
	}
	return pool[rng.IntN(len(pool))], nil
}

// IsValid reports whether w is in the dictionary, regardless of category.
func (b *Bank) IsValid(w game.Word) bool {
	_, ok := b.dictionary[game.NormalizeWord(string(w))]
	return ok
}

// Categories returns the sorted category names.
func (b *Bank) Categories() []string {
	return append([]string(nil), b.names...)
}

// HasCategory reports whether name is a known category.
func (b *Bank) HasCategory(name string) bool {
	_, ok := b.categories[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// Category returns the words of one category, or nil if it is unknown.
func (b *Bank) Category(name string) []game.Word {
	return append([]game.Word(nil), b.categories[strings.ToUpper(name)]...)
}

// Vocabulary returns every secret candidate in sorted order.
func (b *Bank) Vocabulary() []game.Word {
	return append([]game.Word(nil), b.vocabulary...)
}

// Stats returns counts of loaded words: (secret candidates, valid guesses).
func (b *Bank) Stats() (answers int, allowed int) {
	return len(b.vocabulary), len(b.dictionary)
}

// normalize keeps valid five-letter words, upper-cased, sorted, unique.
func normalize(list []string) []game.Word {
	set := make(map[game.Word]struct{}, len(list))
	for _, s := range list {
		w := game.NormalizeWord(s)
		if w.Len() == game.WordLength && w.IsAlpha() {
			set[w] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[game.Word]struct{}) []game.Word {
	out := make([]game.Word, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
