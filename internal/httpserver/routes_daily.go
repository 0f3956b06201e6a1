// internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily Challenge" mode.
//   - POST /daily/new → start today's game at medium difficulty.
//
// Every player gets the same secret for a UTC date (see package daily).
// The returned game is an ordinary session: guesses, reset and events use
// the /game routes. A reset draws the next word from the same daily stream.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily/new", s.handleDailyNew)
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	var st game.State
	id, err := s.opts.Store.Create(playerFrom(r.Context()), func(id string) (*game.Session, error) {
		g, err := daily.NewSession(s.opts.Bank, now, s.opts.DailySalt, s.sessionOptions(id, modeDaily)...)
		if err != nil {
			return nil, err
		}
		st = g.Snapshot()
		return g, nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.created(w, id, daily.DateKey(now), st)
}
