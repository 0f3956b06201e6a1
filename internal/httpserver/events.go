package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// eventPayload is one SSE message: the session event plus its game ID and,
// for rejections, the reason.
type eventPayload struct {
	GameID string `json:"gameId"`
	game.Event
	Error string `json:"error,omitempty"`
}

type message struct {
	name string
	data []byte
}

// Broker is an in-process pub/sub for session events, keyed by game ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan message]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan message]struct{})}
}

// Subscribe returns a channel that receives events for gameID.
func (b *Broker) Subscribe(gameID string) chan message {
	ch := make(chan message, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan message]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(gameID string, ch chan message) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish fans e out to subscribers of gameID. Slow subscribers miss events.
func (b *Broker) Publish(gameID string, e game.Event) {
	p := eventPayload{GameID: gameID, Event: e}
	if e.Err != nil {
		p.Error = e.Err.Error()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	msg := message{name: string(e.Type), data: data}

	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.RUnlock()
}

// publisher is the game.Sink that feeds one session into the broker.
type publisher struct {
	broker *Broker
	id     string
}

func (p publisher) Emit(e game.Event) { p.broker.Publish(p.id, e) }

// eventExpired is the last message on a stream whose session was swept.
const eventExpired = "expired"

// handleEvents streams a game's events as Server-Sent Events. The stream
// ends when the client goes away or the session is no longer in the store.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id, owner := chi.URLParam(r, "id"), playerFrom(r.Context())
	if err := s.opts.Store.Update(id, owner, func(*game.Session) error { return nil }); err != nil {
		s.fail(w, r, err)
		return
	}

	// Subscribe before the headers go out so a client that has seen the
	// response cannot miss the next event.
	ch := s.broker.Subscribe(id)
	defer s.broker.Unsubscribe(id, ch)

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("streaming not supported")
		return
	}

	ping := time.NewTicker(s.pingEvery)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case m := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.name, m.data)
			_ = rc.Flush()
		case <-ping.C:
			if !s.opts.Store.Has(id, owner) {
				fmt.Fprintf(w, "event: %s\ndata: {\"gameId\":%q}\n\n", eventExpired, id)
				_ = rc.Flush()
				return
			}
			fmt.Fprint(w, ": ping\n\n")
			_ = rc.Flush()
		}
	}
}
