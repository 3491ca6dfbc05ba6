package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scoreboard/internal/api/request"
	"github.com/mcoot/scoreboard/internal/api/response"
	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/services/scoreboard"
	"github.com/mcoot/scoreboard/internal/web/sse"
)

// BoardHandler handles board-level endpoints
type BoardHandler struct {
	controller  *scoreboard.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewBoardHandler creates a new board handler. hubManager and broadcaster
// may be nil, which disables the event stream.
func NewBoardHandler(controller *scoreboard.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		controller:  controller,
		hubManager:  hubManager,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func boardCode(r *http.Request) model.BoardCode {
	return model.ParseBoardCode(mux.Vars(r)["code"])
}

// Create handles POST /api/v1/boards
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBoardRequest
	if err := decodeJSON(r, &req, true); err != nil {
		WriteError(w, err)
		return
	}
	if req.WinThreshold < 0 {
		WriteError(w, model.ErrInvalidThreshold)
		return
	}

	board, err := h.controller.CreateBoard(r.Context(), req.WinThreshold)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.Created(w, response.BoardFromModel(board))
}

// List handles GET /api/v1/boards
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.controller.ListBoards(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardListFromModel(boards))
}

// Get handles GET /api/v1/boards/{code}
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	board, err := h.controller.GetBoard(r.Context(), boardCode(r))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardFromModel(board))
}

// Delete handles DELETE /api/v1/boards/{code}
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeleteBoard(r.Context(), boardCode(r)); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.NoContent(w)
}

// SetThreshold handles PUT /api/v1/boards/{code}/threshold
func (h *BoardHandler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	var req request.SetThresholdRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	if req.WinThreshold == nil {
		WriteError(w, NewInvalidRequestError("win_threshold is required"))
		return
	}

	board, event, err := h.controller.SetThreshold(r.Context(), boardCode(r), *req.WinThreshold)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardUpdateFromEvent(event, board))
}

// ResetScores handles POST /api/v1/boards/{code}/reset-scores
func (h *BoardHandler) ResetScores(w http.ResponseWriter, r *http.Request) {
	board, event, err := h.controller.ResetScores(r.Context(), boardCode(r))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardUpdateFromEvent(event, board))
}

// ResetGame handles POST /api/v1/boards/{code}/reset
func (h *BoardHandler) ResetGame(w http.ResponseWriter, r *http.Request) {
	board, event, err := h.controller.ResetGame(r.Context(), boardCode(r))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardUpdateFromEvent(event, board))
}

// Events handles GET /api/v1/boards/{code}/events
func (h *BoardHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil || h.broadcaster == nil {
		WriteError(w, NewInvalidRequestError("event stream unavailable"))
		return
	}

	board, err := h.controller.GetBoard(r.Context(), boardCode(r))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	snapshot, err := h.broadcaster.Snapshot(r.Context(), board, sse.FormatJSON)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(board.Code)
	sse.ServeSSE(w, r, hub, sse.FormatJSON, snapshot)
}
