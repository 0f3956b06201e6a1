package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

type playOptions struct {
	category   string
	difficulty string
	seed       uint64
	wordsDir   string
	keepScore  bool
}

func newPlayCmd() *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play in the terminal. Type a five-letter word per line.
Commands: :reset, :cat <name>, :diff <easy|medium|hard>, :help, :quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				bank *words.Bank
				err  error
			)
			if opts.wordsDir != "" {
				bank, err = words.FromDir(opts.wordsDir)
			} else {
				bank, err = words.Embedded()
			}
			if err != nil {
				return err
			}
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), bank, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.category, "category", "c", "", "category to draw secrets from (default: all)")
	f.StringVarP(&opts.difficulty, "difficulty", "d", string(game.Medium), "easy, medium or hard")
	f.Uint64Var(&opts.seed, "seed", 0, "fixed random seed (0 = random)")
	f.StringVar(&opts.wordsDir, "words-dir", "", "directory with categories/*.txt and allowed.txt")
	f.BoolVar(&opts.keepScore, "keep-score", false, "carry the score over on :reset")
	return cmd
}

// runPlay drives one terminal session until :quit or end of input.
func runPlay(in io.Reader, out io.Writer, bank game.WordBank, opts playOptions) error {
	d, err := game.ParseDifficulty(opts.difficulty)
	if err != nil {
		return err
	}
	sessOpts := []game.Option{
		game.WithKeepScoreOnReset(opts.keepScore),
		game.WithSink(game.SinkFunc(func(e game.Event) {
			log.Debug().Str("event", string(e.Type)).Int("attempt", e.Attempt).Str("status", string(e.Status)).Msg("session")
		})),
	}
	if opts.seed != 0 {
		sessOpts = append(sessOpts, game.WithRand(game.NewSeededRand(opts.seed)))
	}

	s := game.NewSession(bank, sessOpts...)
	if err := s.Start(opts.category, d); err != nil {
		return err
	}

	b := newBoard(out)
	b.banner(s)
	sc := bufio.NewScanner(in)
	for {
		b.prompt(s)
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			quit, err := b.command(s, line)
			if err != nil {
				b.problem(err)
			}
			if quit {
				return nil
			}
			continue
		}

		res, err := s.SubmitGuess(line)
		if err != nil {
			b.problem(err)
			continue
		}
		b.result(s, res)
	}
	fmt.Fprintln(out)
	return sc.Err()
}

// board renders a session with lipgloss. Colours are dropped automatically
// when out is not a terminal.
type board struct {
	out   io.Writer
	tiles map[game.LetterState]lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

var marks = map[game.LetterState]byte{
	game.Empty:   '.',
	game.Absent:  '-',
	game.Present: '~',
	game.Correct: '=',
}

func newBoard(out io.Writer) *board {
	r := lipgloss.NewRenderer(out)
	tile := r.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	return &board{
		out: out,
		tiles: map[game.LetterState]lipgloss.Style{
			game.Empty:   tile.Foreground(lipgloss.Color("#818384")),
			game.Absent:  tile.Background(lipgloss.Color("#3A3A3C")),
			game.Present: tile.Background(lipgloss.Color("#B59F3B")),
			game.Correct: tile.Background(lipgloss.Color("#538D4E")),
		},
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#818384")),
		good:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#538D4E")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
	}
}

func (b *board) banner(s *game.Session) {
	category := s.Category()
	if category == "" {
		category = "ALL"
	}
	st := s.Snapshot()
	fmt.Fprintln(b.out, b.title.Render(fmt.Sprintf("New game: %s, %s, %d attempts", category, s.Difficulty(), st.MaxAttempts)))
	fmt.Fprintln(b.out, b.muted.Render(fmt.Sprintf("Score: %d", st.Score)))
}

func (b *board) prompt(s *game.Session) {
	if s.Status().Terminal() {
		fmt.Fprint(b.out, ":reset to play again > ")
		return
	}
	fmt.Fprintf(b.out, "%d/%d > ", s.Attempt()+1, s.Difficulty().MaxAttempts())
}

func (b *board) row(guess game.Word, row game.Evaluation) string {
	letters := []rune(string(guess))
	tiles := make([]string, len(row))
	ms := make([]byte, len(row))
	for i, st := range row {
		tiles[i] = b.tiles[st].Render(string(letters[i]))
		ms[i] = marks[st]
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "  " + string(ms)
}

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

func (b *board) keyboard(keys game.KeyStateMap) string {
	lines := make([]string, len(keyboardRows))
	for i, letters := range keyboardRows {
		var sb strings.Builder
		for _, r := range letters {
			sb.WriteString(b.tiles[keys[string(r)]].Render(string(r)))
		}
		lines[i] = strings.Repeat(" ", i) + sb.String()
	}
	return strings.Join(lines, "\n")
}

func (b *board) result(s *game.Session, res *game.Result) {
	fmt.Fprintln(b.out, b.row(res.Guess, res.Row))
	fmt.Fprintln(b.out, b.keyboard(res.Keys))
	if res.Hint != nil {
		fmt.Fprintln(b.out, b.muted.Render(fmt.Sprintf("Hint: letter %d is %s", res.Hint.Position, res.Hint.Letter)))
	}
	switch res.Status {
	case game.StatusWon:
		fmt.Fprintln(b.out, b.good.Render(fmt.Sprintf("Solved in %d! +%d points, score %d", res.Attempt+1, res.Gained, res.Score)))
	case game.StatusLost:
		fmt.Fprintln(b.out, b.bad.Render(fmt.Sprintf("Out of attempts. The word was %s. Score %d", s.Snapshot().Secret, res.Score)))
	}
}

func (b *board) problem(err error) {
	fmt.Fprintln(b.out, b.bad.Render(err.Error()))
}

const helpText = `:reset               new word, same category and difficulty
:cat <name|all>      switch category (restarts, score 0)
:diff [level]        easy, medium or hard (restarts, score 0)
:quit                leave`

// command handles a ':' line and reports whether to quit.
func (b *board) command(s *game.Session, line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		return true, nil
	case "help", "h", "?":
		fmt.Fprintln(b.out, helpText)
		return false, nil
	case "reset", "r":
		if err := s.Reset(); err != nil {
			return false, err
		}
	case "cat", "category":
		if strings.EqualFold(arg, "all") {
			arg = ""
		}
		if err := s.Configure(arg, s.Difficulty()); err != nil {
			return false, err
		}
	case "diff", "difficulty":
		d := s.Difficulty()
		if arg != "" {
			var err error
			if d, err = game.ParseDifficulty(arg); err != nil {
				return false, err
			}
		}
		if err := s.Configure(s.Category(), d); err != nil {
			return false, err
		}
	default:
		return false, errors.Newf("unknown command %q, try :help", name)
	}
	b.banner(s)
	return false, nil
}
