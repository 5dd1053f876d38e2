package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kindredapp/kindred-backend/internal/services"
)

type VectorizationHandler struct {
	vectorization services.VectorizationService
	matchScore    services.MatchScoreService
}

func NewVectorizationHandler(vectorization services.VectorizationService, matchScore services.MatchScoreService) *VectorizationHandler {
	return &VectorizationHandler{vectorization: vectorization, matchScore: matchScore}
}

// Vectorize runs the single-user pipeline. Called by the onboarding, profile
// edit and prompt-answer triggers; a missing user is a 200 no-op, not an
// error, because those triggers fire best-effort.
func (vh *VectorizationHandler) Vectorize(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	res, err := vh.vectorization.VectorizeUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "vectorization_failed", err)
		return
	}
	RespondOK(c, res)
}

type batchRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" binding:"required"`
}

func (vh *VectorizationHandler) VectorizeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if len(req.UserIDs) == 0 {
		RespondError(c, http.StatusBadRequest, "empty_batch", errors.New("user_ids required"))
		return
	}

	summary, err := vh.vectorization.VectorizeBatch(c.Request.Context(), req.UserIDs)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "batch_failed", err)
		return
	}
	RespondOK(c, summary)
}

func (vh *VectorizationHandler) Similarity(c *gin.Context) {
	userA, err := uuid.Parse(c.Param("userA"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	userB, err := uuid.Parse(c.Param("userB"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	score, ok, err := vh.matchScore.Score(c.Request.Context(), userA, userB)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "similarity_failed", err)
		return
	}
	RespondOK(c, gin.H{"score": score, "comparable": ok})
}
