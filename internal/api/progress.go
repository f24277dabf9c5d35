package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type progressResponse struct {
	CorrectAnswers uint64  `json:"correct_answers"`
	TotalQuestions uint64  `json:"total_questions"`
	Accuracy       float64 `json:"accuracy"`
	Level          string  `json:"level"`
}

// GetProgress handles GET /progress/{user_id}.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	stats := h.tutor.Progress().Stats(r.Context(), chi.URLParam(r, "user_id"))
	JSON(w, http.StatusOK, progressResponse{
		CorrectAnswers: stats.Correct,
		TotalQuestions: stats.Total,
		Accuracy:       stats.Accuracy,
		Level:          string(stats.Level),
	})
}

// ResetProgress handles DELETE /progress/{user_id}.
func (h *Handler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	if err := h.tutor.Progress().Reset(r.Context(), userID); err != nil {
		h.log.Error("reset progress", zap.String("user", userID), zap.Error(err))
		Error(w, http.StatusInternalServerError, "Failed to reset progress")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"message": "Progress reset"})
}
