package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/pagination"
	"yieldvault/internal/services"
	"yieldvault/internal/yield"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	insightService    services.InsightServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, insightService services.InsightServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, insightService: insightService}
}

// CreateInvestmentRequest represents the request payload for opening an investment.
// Amount is a JSON number or a decimal string.
type CreateInvestmentRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Amount    json.RawMessage `json:"amount" swaggertype:"number"`
}

// parseAmount reads the raw amount field. Anything that is not a decimal
// number, including a missing amount, is ErrInvalidAmount.
func parseAmount(raw json.RawMessage) (money.Amount, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return money.Zero, apperrors.Wrap(apperrors.ErrInvalidAmount, err)
		}
	}
	if text == "" || text == "null" {
		return money.Zero, apperrors.ErrInvalidAmount
	}
	return yield.ParseAmount(text)
}

// ListInvestmentsQuery holds the investment filters accepted as query parameters.
type ListInvestmentsQuery struct {
	Status string `form:"status" binding:"omitempty,investment_status"`
	Type   string `form:"type" binding:"omitempty,investment_type"`
}

// CreateInvestment handles opening a new investment.
// @Summary     Create investment
// @Description Invest an amount in a product. The expected return and maturity date are fixed at creation.
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} lifecycle.Position "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input or amount outside product limits"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	position, err := h.investmentService.CreateInvestment(userID, req.ProductID, amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, position)
}

// ListInvestments handles listing the user's investments.
// @Summary     List investments
// @Description List the user's investments, newest first, valued as of now
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Effective status (active, matured, cancelled)"
// @Param       type      query string false "Investment type"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[lifecycle.Position] "Investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListInvestmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var filter services.InvestmentFilter
	if query.Status != "" {
		status := models.InvestmentStatus(query.Status)
		filter.Status = &status
	}
	if query.Type != "" {
		kind := models.InvestmentType(query.Type)
		filter.Type = &kind
	}

	result, err := h.investmentService.ListInvestments(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetInvestment handles fetching one investment.
// @Summary     Get investment
// @Description Get one of the user's investments with its current valuation
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} lifecycle.Position "Investment"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	position, err := h.investmentService.GetInvestmentByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, position)
}

// CancelInvestment handles cancelling an active investment.
// @Summary     Cancel investment
// @Description Cancel an active investment. Matured and cancelled investments cannot be cancelled.
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} lifecycle.Position "Investment cancelled"
// @Failure     400 {object} ErrorResponse "Investment is not active"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/cancel [put]
func (h *InvestmentHandler) CancelInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	position, err := h.investmentService.CancelInvestment(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, position)
}

// GetPortfolioSummary handles the portfolio aggregate.
// @Summary     Portfolio summary
// @Description Totals and risk and type distributions over all of the user's investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} portfolio.Summary "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/summary [get]
func (h *InvestmentHandler) GetPortfolioSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.investmentService.GetPortfolioSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetPortfolioInsights handles advice on the user's portfolio.
// @Summary     Portfolio insights
// @Description Advice on the user's portfolio given their risk appetite
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  insight.Insight "Insights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/insights [get]
func (h *InvestmentHandler) GetPortfolioInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insights, err := h.insightService.GetPortfolioInsights(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
