package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	Handler   string `json:"handler"`
	Level     string `json:"level"`
}

// Chat handles POST /chat: it records the learner's message, runs one tutor
// turn and records the reply.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		Error(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx := r.Context()
	if err := h.history.SaveMessage(ctx, req.UserID, "You: "+req.Message); err != nil {
		h.log.Error("save learner message", zap.String("user", req.UserID), zap.Error(err))
		Error(w, http.StatusInternalServerError, "Failed to save message")
		return
	}

	turn, err := h.tutor.ProcessTurn(ctx, req.UserID, req.Message)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.history.SaveMessage(ctx, req.UserID, "Teacher: "+turn.Reply); err != nil {
		h.log.Error("save tutor reply", zap.String("user", req.UserID), zap.Error(err))
		Error(w, http.StatusInternalServerError, "Failed to save reply")
		return
	}

	JSON(w, http.StatusOK, chatResponse{
		Response:  turn.Reply,
		Timestamp: formatTime(turn.Timestamp),
		Handler:   string(turn.Handler),
		Level:     string(turn.Level),
	})
}
