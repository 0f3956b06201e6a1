package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/metrics"
)

const (
	modeFree  = "free"
	modeDaily = "daily"

	// allCategories selects the full vocabulary in /game/config, where an
	// omitted category keeps the current one.
	allCategories = "all"
)

type newGameReq struct {
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty" enum:"easy,medium,hard"`
}

type gameRef struct {
	GameID string `json:"gameId" required:"true"`
}

type guessReq struct {
	GameID string `json:"gameId" required:"true"`
	Guess  string `json:"guess" required:"true"`
}

type configReq struct {
	GameID     string `json:"gameId" required:"true"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty" enum:"easy,medium,hard"`
}

// GameResponse carries a game ID and its current state.
type GameResponse struct {
	GameID string     `json:"gameId"`
	Date   string     `json:"date,omitempty"`
	State  game.State `json:"state"`
}

// GuessResponse is returned by POST /game/guess.
type GuessResponse struct {
	Result *game.Result `json:"result"`
	State  game.State   `json:"state"`
}

type categoryInfo struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

// CategoriesResponse lists the available categories.
type CategoriesResponse struct {
	Categories   []categoryInfo `json:"categories"`
	Difficulties []string       `json:"difficulties"`
}

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Post("/game/reset", s.handleReset)
	r.Post("/game/config", s.handleConfig)
	r.Get("/game/{id}", s.handleGetGame)
}

// sessionOptions routes session events to metrics and SSE subscribers.
func (s *Server) sessionOptions(id, mode string, extra ...game.Option) []game.Option {
	opts := []game.Option{
		game.WithSink(game.MultiSink{metrics.Sink{Mode: mode}, publisher{broker: s.broker, id: id}}),
		game.WithKeepScoreOnReset(s.opts.KeepScoreOnReset),
	}
	return append(opts, extra...)
}

func (s *Server) created(w http.ResponseWriter, id, date string, st game.State) {
	metrics.ActiveSessions.Set(float64(s.opts.Store.Len()))
	writeJSON(w, http.StatusOK, GameResponse{GameID: id, Date: date, State: st})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	d, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var st game.State
	id, err := s.opts.Store.Create(playerFrom(r.Context()), func(id string) (*game.Session, error) {
		g := game.NewSession(s.opts.Bank, s.sessionOptions(id, modeFree)...)
		if err := g.Start(req.Category, d); err != nil {
			return nil, err
		}
		st = g.Snapshot()
		return g, nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.created(w, id, "", st)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	var res GuessResponse
	err := s.opts.Store.Update(req.GameID, playerFrom(r.Context()), func(g *game.Session) error {
		out, err := g.SubmitGuess(req.Guess)
		if err != nil {
			return err
		}
		res = GuessResponse{Result: out, State: g.Snapshot()}
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req gameRef
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	s.update(w, r, req.GameID, (*game.Session).Reset)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	var req configReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	s.update(w, r, req.GameID, func(g *game.Session) error {
		category, d := g.Category(), g.Difficulty()
		switch {
		case strings.EqualFold(req.Category, allCategories):
			category = ""
		case req.Category != "":
			category = req.Category
		}
		if req.Difficulty != "" {
			var err error
			if d, err = game.ParseDifficulty(req.Difficulty); err != nil {
				return err
			}
		}
		return g.Configure(category, d)
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, chi.URLParam(r, "id"), func(*game.Session) error { return nil })
}

// update applies fn to a game and responds with the resulting state.
func (s *Server) update(w http.ResponseWriter, r *http.Request, id string, fn func(*game.Session) error) {
	var st game.State
	err := s.opts.Store.Update(id, playerFrom(r.Context()), func(g *game.Session) error {
		if err := fn(g); err != nil {
			return err
		}
		st = g.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GameResponse{GameID: id, State: st})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	res := CategoriesResponse{
		Categories:   []categoryInfo{},
		Difficulties: []string{string(game.Easy), string(game.Medium), string(game.Hard)},
	}
	for _, name := range s.opts.Bank.Categories() {
		res.Categories = append(res.Categories, categoryInfo{Name: name, Words: len(s.opts.Bank.Category(name))})
	}
	writeJSON(w, http.StatusOK, res)
}
