package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type historyItem struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// GetHistory handles GET /history/{user_id}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	entries, err := h.history.History(r.Context(), userID)
	if err != nil {
		h.log.Error("load history", zap.String("user", userID), zap.Error(err))
		Error(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{Timestamp: formatTime(e.Timestamp), Message: e.Message})
	}
	JSON(w, http.StatusOK, map[string]any{"history": items})
}

// ClearHistory handles DELETE /history/{user_id}.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	if err := h.history.ClearHistory(r.Context(), userID); err != nil {
		h.log.Error("clear history", zap.String("user", userID), zap.Error(err))
		Error(w, http.StatusInternalServerError, "Failed to clear chat history")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared"})
}
