package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scoreboard/internal/api/handler"
	apimw "github.com/mcoot/scoreboard/internal/api/middleware"
	"github.com/mcoot/scoreboard/internal/api/response"
	"github.com/mcoot/scoreboard/internal/middleware"
	"github.com/mcoot/scoreboard/internal/services/scoreboard"
	"github.com/mcoot/scoreboard/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Controller  *scoreboard.Controller
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	// Player names travel percent-encoded and may contain "/"
	r.UseEncodedPath()
	Register(r, cfg)
	return r
}

// Register mounts the API routes under /api/v1 on r
func Register(r *mux.Router, cfg RouterConfig) {
	boardHandler := handler.NewBoardHandler(cfg.Controller, cfg.HubManager, cfg.Broadcaster, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.Controller, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(apimw.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api.HandleFunc("/boards", boardHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/boards", boardHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/boards/{code}", boardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/boards/{code}", boardHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{code}/threshold", boardHandler.SetThreshold).Methods(http.MethodPut)
	api.HandleFunc("/boards/{code}/reset-scores", boardHandler.ResetScores).Methods(http.MethodPost)
	api.HandleFunc("/boards/{code}/reset", boardHandler.ResetGame).Methods(http.MethodPost)
	api.HandleFunc("/boards/{code}/events", boardHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/boards/{code}/players", playerHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/boards/{code}/players/{name}", playerHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{code}/players/{name}/scores", playerHandler.AddScore).Methods(http.MethodPost)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
