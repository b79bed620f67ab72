package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yieldvault/internal/services"
)

// AuthHandler handles the public account helpers. Registration and login are
// served by the identity service.
type AuthHandler struct {
	insightService services.InsightServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(insightService services.InsightServicer) *AuthHandler {
	return &AuthHandler{insightService: insightService}
}

// AnalyzePasswordRequest represents the password analysis request payload
type AnalyzePasswordRequest struct {
	Password string `json:"password" binding:"required,max=128"`
}

// AnalyzePassword scores a candidate password
// @Summary     Analyze password strength
// @Description Score a candidate password from 0 to 100 with feedback and suggestions
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body AnalyzePasswordRequest true "Candidate password"
// @Success     200 {object} insight.PasswordAnalysis "Password analysis"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /auth/analyze-password [post]
func (h *AuthHandler) AnalyzePassword(c *gin.Context) {
	var req AnalyzePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	c.JSON(http.StatusOK, h.insightService.AnalyzePassword(c.Request.Context(), req.Password))
}
