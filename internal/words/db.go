package words

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// Seed copies b into the words table if the table is empty.
// Dictionary-only words are stored with an empty category.
// It returns the number of rows inserted.
func Seed(ctx context.Context, db *sql.DB, b *Bank) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM words").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting words")
	}
	if n > 0 {
		log.Debug().Int("rows", n).Msg("word table already seeded")
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin seed")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO words(word, category) VALUES (?, ?)")
	if err != nil {
		return 0, errors.Wrap(err, "prepare seed")
	}
	defer stmt.Close()

	inserted := 0
	insert := func(w game.Word, category string) error {
		res, err := stmt.ExecContext(ctx, string(w), category)
		if err != nil {
			return errors.Wrapf(err, "insert %s/%s", category, w)
		}
		c, _ := res.RowsAffected()
		inserted += int(c)
		return nil
	}

	for _, name := range b.names {
		for _, w := range b.categories[name] {
			if err := insert(w, name); err != nil {
				return 0, err
			}
		}
	}
	vocab := make(map[game.Word]struct{}, len(b.vocabulary))
	for _, w := range b.vocabulary {
		vocab[w] = struct{}{}
	}
	for _, w := range sortedKeys(b.dictionary) {
		if _, ok := vocab[w]; ok {
			continue
		}
		if err := insert(w, ""); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit seed")
	}
	return inserted, nil
}

// Load builds a Bank from the words table.
func Load(ctx context.Context, db *sql.DB) (*Bank, error) {
	rows, err := db.QueryContext(ctx, "SELECT word, category FROM words ORDER BY category, word")
	if err != nil {
		return nil, errors.Wrap(err, "query words")
	}
	defer rows.Close()

	cats := map[string][]string{}
	var extra []string
	for rows.Next() {
		var word, category string
		if err := rows.Scan(&word, &category); err != nil {
			return nil, errors.Wrap(err, "scan word")
		}
		if category == "" {
			extra = append(extra, word)
			continue
		}
		cats[category] = append(cats[category], word)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate words")
	}

	b := New(cats, extra)
	if len(b.vocabulary) == 0 {
		return nil, errors.Wrap(game.ErrWordBankUnavailable, "words table has no secret candidates")
	}
	return b, nil
}
