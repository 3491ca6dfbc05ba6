package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/services/scoreboard"
	"github.com/mcoot/scoreboard/internal/web/sse"
	"github.com/mcoot/scoreboard/internal/web/views"
)

// BoardHandler serves the read-only live scoreboard pages
type BoardHandler struct {
	controller  *scoreboard.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(controller *scoreboard.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		controller:  controller,
		hubManager:  hubManager,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Index renders the list of active boards
func (h *BoardHandler) Index(w http.ResponseWriter, r *http.Request) {
	boards, err := h.controller.ListBoards(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.Layout("Scoreboards", views.Index(boards)))
}

// View renders one board's live page
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	code := model.ParseBoardCode(mux.Vars(r)["code"])

	board, err := h.controller.GetBoard(r.Context(), code)
	if errors.Is(err, model.ErrBoardNotFound) {
		h.render(w, r, http.StatusNotFound, views.Layout("Board not found", views.NotFound(code)))
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, views.Layout("Board "+string(board.Code), views.BoardPage(board)))
}

// Events streams re-rendered scoreboard fragments for one board
func (h *BoardHandler) Events(w http.ResponseWriter, r *http.Request) {
	code := model.ParseBoardCode(mux.Vars(r)["code"])

	board, err := h.controller.GetBoard(r.Context(), code)
	if errors.Is(err, model.ErrBoardNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	// A reconnecting page may have missed updates, so start with the current state
	snapshot, err := h.broadcaster.Snapshot(r.Context(), board, sse.FormatHTML)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(board.Code)
	sse.ServeSSE(w, r, hub, sse.FormatHTML, snapshot)
}

// render buffers the component so a render failure can still become a 500
func (h *BoardHandler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *BoardHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("web request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
