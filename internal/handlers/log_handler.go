package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yieldvault/internal/services"
)

// LogHandler handles the user's API transaction log requests.
type LogHandler struct {
	logService     services.TransactionLogServicer
	insightService services.InsightServicer
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService services.TransactionLogServicer, insightService services.InsightServicer) *LogHandler {
	return &LogHandler{logService: logService, insightService: insightService}
}

// ListLogsQuery holds the log filters accepted as query parameters.
type ListLogsQuery struct {
	Method     string `form:"method" binding:"omitempty,http_method"`
	StatusCode *int   `form:"status_code" binding:"omitempty,min=100,max=599"`
	ErrorsOnly bool   `form:"errors_only"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// LogSummaryQuery holds the window for the log summary.
type LogSummaryQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

// ListLogs handles listing the user's recent API requests.
// @Summary     List transaction logs
// @Description List the user's recent API requests, newest first
// @Tags        logs
// @Produce     json
// @Security    BearerAuth
// @Param       method      query string  false "HTTP method"
// @Param       status_code query int     false "Status code"
// @Param       errors_only query boolean false "Only failed requests"
// @Param       limit       query int     false "Maximum entries (default 50)"
// @Success     200 {array}  models.TransactionLog "Logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter := services.LogFilter{
		UserID:     &userID,
		StatusCode: query.StatusCode,
		ErrorsOnly: query.ErrorsOnly,
		Limit:      query.Limit,
	}
	if query.Method != "" {
		filter.Method = &query.Method
	}

	logs, err := h.logService.List(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetLogSummary handles the aggregate over the user's recent requests.
// @Summary     Transaction log summary
// @Description Success and error rates, method and status breakdowns, and top failures over the last days
// @Tags        logs
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window in days (default 7)"
// @Success     200 {object} logstats.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs/summary [get]
func (h *LogHandler) GetLogSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query LogSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	summary, err := h.logService.Summary(userID, query.Days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetErrorSummary handles the plain-language summary of recent failures.
// @Summary     Error summary
// @Description Explain the user's recent failed requests
// @Tags        logs
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} insight.ErrorSummary "Error summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs/error-summary [get]
func (h *LogHandler) GetErrorSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.insightService.GetErrorSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
