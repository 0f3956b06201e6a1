package httpserver

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

type gameIDPath struct {
	ID string `path:"id"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Wordle API"
	r.Spec.Info.Version = "0.2.0"
	r.Spec.Info.WithDescription("Word-guessing game sessions: evaluation, keyboard state, scoring and hints.")

	// GET /health
	getHealth, _ := r.NewOperationContext(http.MethodGet, "/health")
	getHealth.SetSummary("Health check")
	getHealth.AddRespStructure(healthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealth)

	// GET /categories
	getCategories, _ := r.NewOperationContext(http.MethodGet, "/categories")
	getCategories.SetSummary("List categories")
	getCategories.SetDescription("Categories that can be passed to /game/new and /game/config, with word counts.")
	getCategories.AddRespStructure(CategoriesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCategories)

	// GET /debug/words
	getStats, _ := r.NewOperationContext(http.MethodGet, "/debug/words")
	getStats.SetSummary("Word list sizes")
	getStats.AddRespStructure(wordStats{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStats)

	// POST /game/new
	postNew, _ := r.NewOperationContext(http.MethodPost, "/game/new")
	postNew.SetSummary("Start a game")
	postNew.SetDescription("Starts a session for the calling player. An unknown category draws from every category.")
	postNew.AddReqStructure(newGameReq{})
	postNew.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postNew.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postNew.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postNew)

	// POST /game/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/game/guess")
	postGuess.SetSummary("Submit a guess")
	postGuess.SetDescription("Rejected guesses do not consume an attempt.")
	postGuess.AddReqStructure(guessReq{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(postGuess)

	// POST /game/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/game/reset")
	postReset.SetSummary("Reset a game")
	postReset.SetDescription("New secret with the same category and difficulty.")
	postReset.AddReqStructure(gameRef{})
	postReset.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postReset)

	// POST /game/config
	postConfig, _ := r.NewOperationContext(http.MethodPost, "/game/config")
	postConfig.SetSummary("Change category or difficulty")
	postConfig.SetDescription("Omitted fields keep their current value; category \"all\" selects every category. Always restarts the game and zeroes the score.")
	postConfig.AddReqStructure(configReq{})
	postConfig.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postConfig.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postConfig.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postConfig)

	// GET /game/{id}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/game/{id}")
	getGame.SetSummary("Get game state")
	getGame.SetDescription("The secret is only included once the game is over.")
	getGame.AddReqStructure(gameIDPath{})
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// GET /game/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/game/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events for started, evaluated and rejected. Pings every 30s.")
	getEvents.AddReqStructure(gameIDPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /daily/new
	postDaily, _ := r.NewOperationContext(http.MethodPost, "/daily/new")
	postDaily.SetSummary("Start the daily game")
	postDaily.SetDescription("Same secret for every player on a UTC date. Medium difficulty.")
	postDaily.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postDaily.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postDaily)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
