package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yieldvault/internal/models"
	"yieldvault/internal/services"
)

// ProfileHandler handles the authenticated user's profile.
type ProfileHandler struct {
	userService services.UserServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(userService services.UserServicer) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// UpdateRiskAppetiteRequest represents the request payload for changing the
// risk appetite.
type UpdateRiskAppetiteRequest struct {
	RiskAppetite models.RiskLevel `json:"risk_appetite" binding:"required,risk_level"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	RiskAppetite models.RiskLevel `json:"risk_appetite"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		RiskAppetite: user.RiskAppetite,
	}
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateRiskAppetite changes the user's risk appetite
// @Summary     Update risk appetite
// @Description Set the risk appetite used for recommendations and portfolio insights
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateRiskAppetiteRequest true "Risk appetite"
// @Success     200 {object} UserResponse "User profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile/risk-appetite [put]
func (h *ProfileHandler) UpdateRiskAppetite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRiskAppetiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.UpdateRiskAppetite(userID, req.RiskAppetite)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
