package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

func playBank() *words.Bank {
	return words.New(
		map[string][]string{"FRUITS": {"BERRY"}, "ANIMALS": {"TIGER"}},
		[]string{"MANGO", "CRANE"},
	)
}

func TestRunPlay_Win(t *testing.T) {
	in := strings.NewReader("xyzzy\nmango\nberry\n:quit\n")
	var out bytes.Buffer

	err := runPlay(in, &out, playBank(), playOptions{category: "fruits", difficulty: "medium", seed: 1})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "New game: FRUITS, medium, 6 attempts")
	assert.Contains(t, s, "not in word list")
	assert.Contains(t, s, "-----", "MANGO shares nothing with BERRY")
	assert.Contains(t, s, "=====")
	assert.Contains(t, s, "Solved in 2! +90 points, score 90")
}

func TestRunPlay_LossAndCommands(t *testing.T) {
	input := strings.Join([]string{
		":diff hard",
		"mango", "mango", "mango", "mango",
		":diff brutal",
		":cat animals",
		"tiger",
		":reset",
		":bogus",
		":help",
	}, "\n")
	var out bytes.Buffer

	err := runPlay(strings.NewReader(input), &out, playBank(), playOptions{category: "fruits", seed: 2})
	require.NoError(t, err, "end of input ends the game quietly")

	s := out.String()
	assert.Contains(t, s, "New game: FRUITS, hard, 4 attempts")
	assert.Contains(t, s, "Out of attempts. The word was BERRY. Score 0")
	assert.Contains(t, s, "unknown difficulty")
	assert.Contains(t, s, "New game: ANIMALS, hard, 4 attempts")
	assert.Contains(t, s, "Solved in 1! +100 points, score 100")
	assert.Contains(t, s, `unknown command "bogus"`)
	assert.Contains(t, s, ":reset               new word")
	assert.Contains(t, s, "Hint: letter", "hints from the second attempt on")
}

func TestRunPlay_KeepScore(t *testing.T) {
	in := strings.NewReader("tiger\n:reset\ntiger\n")
	var out bytes.Buffer
	err := runPlay(in, &out, playBank(), playOptions{category: "animals", keepScore: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "score 200")
}

func TestRunPlay_ConfigureKeepsSettings(t *testing.T) {
	in := strings.NewReader(":cat animals\n:diff\n")
	var out bytes.Buffer
	err := runPlay(in, &out, playBank(), playOptions{category: "dinosaurs", difficulty: "easy", seed: 3})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "New game: ALL, easy, 8 attempts", "unknown category draws from everything")
	assert.Equal(t, 2, strings.Count(s, "New game: ANIMALS, easy, 8 attempts"))
	assert.NotContains(t, s, "medium")
}

func TestRunPlay_Errors(t *testing.T) {
	var out bytes.Buffer
	err := runPlay(strings.NewReader(""), &out, words.New(nil, nil), playOptions{})
	assert.ErrorIs(t, err, game.ErrWordBankUnavailable)

	err = runPlay(strings.NewReader(""), &out, playBank(), playOptions{difficulty: "brutal"})
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "play"}, names)
}
