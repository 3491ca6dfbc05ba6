package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scoreboard/internal/middleware"
	"github.com/mcoot/scoreboard/internal/services/scoreboard"
	"github.com/mcoot/scoreboard/internal/web/handler"
	webmw "github.com/mcoot/scoreboard/internal/web/middleware"
	"github.com/mcoot/scoreboard/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	Controller  *scoreboard.Controller
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the web routes on r
func Register(r *mux.Router, cfg RouterConfig) {
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}
	broadcaster := cfg.Broadcaster
	if broadcaster == nil {
		broadcaster = sse.NewBroadcaster(hubManager, cfg.Logger)
	}

	boardHandler := handler.NewBoardHandler(cfg.Controller, hubManager, broadcaster, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.RequestID)
	pages.Use(webmw.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))

	pages.HandleFunc("/", boardHandler.Index).Methods(http.MethodGet)
	pages.HandleFunc("/boards/{code}", boardHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/boards/{code}/events", boardHandler.Events).Methods(http.MethodGet)
}
