package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scoreboard/internal/api/request"
	"github.com/mcoot/scoreboard/internal/api/response"
	"github.com/mcoot/scoreboard/internal/services/scoreboard"
)

// PlayerHandler handles roster and scoring endpoints
type PlayerHandler struct {
	controller *scoreboard.Controller
	logger     *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *scoreboard.Controller, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{controller: controller, logger: logger}
}

// Add handles POST /api/v1/boards/{code}/players
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	board, event, err := h.controller.AddPlayer(r.Context(), boardCode(r), req.Name)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.Created(w, response.BoardUpdateFromEvent(event, board))
}

// Remove handles DELETE /api/v1/boards/{code}/players/{name}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	board, event, err := h.controller.RemovePlayer(r.Context(), boardCode(r), name)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	removed := !event.IsZero()
	update := response.NewBoardUpdate(board, "Player "+name+" not on the board")
	if removed {
		update = response.BoardUpdateFromEvent(event, board)
	}
	update.Removed = &removed
	response.JSON(w, http.StatusOK, update)
}

// AddScore handles POST /api/v1/boards/{code}/players/{name}/scores
func (h *PlayerHandler) AddScore(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AddScoreRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	if req.Score == nil {
		WriteError(w, NewInvalidRequestError("score is required"))
		return
	}

	board, event, err := h.controller.AddScore(r.Context(), boardCode(r), name, *req.Score)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardUpdateFromEvent(event, board))
}
