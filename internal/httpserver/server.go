// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle engine.
// Responsibilities:
//   - Router + middleware (request IDs, access log, JSON, CORS, timeouts,
//     panic recovery).
//   - Public endpoints: "/", "/health", "/metrics", "/openapi.json", "/docs",
//     "/categories", "/debug/words".
//   - Game endpoints (player identity required, issued on demand):
//     POST /game/new, /game/guess, /game/reset, /game/config,
//     GET /game/{id}, GET /game/{id}/events (SSE).
//   - Daily game: POST /daily/new.
//   - Mapping of game errors to HTTP statuses.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the player cookie works.
//   - The SSE route sits outside the request timeout.

package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/swaggest/swgui/v5emb"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

// Options holds the server's dependencies and settings.
type Options struct {
	Bank             *words.Bank
	Store            *store.Memory
	Auth             Auth
	ClientOrigin     string
	DailySalt        string
	KeepScoreOnReset bool
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server bundles router, session store and event broker.
type Server struct {
	r         *chi.Mux
	opts      Options
	broker    *Broker
	now       func() time.Time
	pingEvery time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Bank == nil {
		opts.Bank = words.New(nil, nil)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Auth.CookieName == "" {
		opts.Auth.CookieName = "wordle_player"
	}
	if opts.Auth.TTL <= 0 {
		opts.Auth.TTL = 14 * 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	s := &Server{
		r:         chi.NewRouter(),
		opts:      opts,
		broker:    NewBroker(),
		now:       opts.Now,
		pingEvery: 30 * time.Second,
	}
	if s.now == nil {
		s.now = time.Now
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(logger))
	s.r.Use(requestIDLogger)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/openapi.json", handleOpenAPI())
	s.r.Mount("/docs", v5emb.New("Wordle API", "/openapi.json", "/docs"))
	s.r.Handle("/metrics", promhttp.Handler())

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "wordle-engine",
				"endpoints": []string{
					"/health", "/categories", "POST /game/new", "POST /game/guess",
					"POST /game/reset", "POST /game/config", "GET /game/{id}",
					"GET /game/{id}/events", "POST /daily/new", "/docs",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/categories", s.handleCategories)
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.opts.Bank.Stats()
			writeJSON(w, http.StatusOK, wordStats{Answers: a, Allowed: g})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.withPlayer())
			s.mountGame(r)
			s.mountDaily(r)
		})
	})

	// Streaming: player identity but no timeout.
	s.r.With(s.withPlayer()).Get("/game/{id}/events", s.handleEvents)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", PlayerTokenHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDLogger adds chi's request ID to the request logger.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------ helpers ------------------------------------

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type wordStats struct {
	Answers int `json:"answers"`
	Allowed int `json:"allowed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}

func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// classify maps an error from the game or store to an HTTP status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrUnknownDifficulty):
		return http.StatusBadRequest, "unknown_difficulty"
	case errors.Is(err, game.ErrNotInDictionary):
		return http.StatusUnprocessableEntity, "not_in_dictionary"
	case errors.Is(err, game.ErrInvalidOperation):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrWordBankUnavailable):
		return http.StatusServiceUnavailable, "word_bank_unavailable"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	l := hlog.FromRequest(r)
	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Str("code", code).Msg("request failed")
	} else {
		l.Debug().Err(err).Str("code", code).Msg("request rejected")
	}
	writeError(w, status, code, err.Error())
}
