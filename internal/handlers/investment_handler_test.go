package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/insight"
	"yieldvault/internal/lifecycle"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/pagination"
	"yieldvault/internal/portfolio"
	"yieldvault/internal/services"
)

// --- mock investment service ---

type mockInvestmentService struct {
	createInvestmentFn    func(userID, productID string, amount money.Amount) (*lifecycle.Position, error)
	getInvestmentByIDFn   func(userID, investmentID string) (*lifecycle.Position, error)
	listInvestmentsFn     func(userID string, filter services.InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[lifecycle.Position], error)
	allInvestmentsFn      func(userID string) ([]models.Investment, error)
	cancelInvestmentFn    func(userID, investmentID string) (*lifecycle.Position, error)
	getPortfolioSummaryFn func(userID string) (*portfolio.Summary, error)
}

func (m *mockInvestmentService) CreateInvestment(userID, productID string, amount money.Amount) (*lifecycle.Position, error) {
	if m.createInvestmentFn != nil {
		return m.createInvestmentFn(userID, productID, amount)
	}
	return &lifecycle.Position{}, nil
}

func (m *mockInvestmentService) GetInvestmentByID(userID, investmentID string) (*lifecycle.Position, error) {
	if m.getInvestmentByIDFn != nil {
		return m.getInvestmentByIDFn(userID, investmentID)
	}
	return &lifecycle.Position{}, nil
}

func (m *mockInvestmentService) ListInvestments(userID string, filter services.InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[lifecycle.Position], error) {
	if m.listInvestmentsFn != nil {
		return m.listInvestmentsFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse([]lifecycle.Position{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockInvestmentService) AllInvestments(userID string) ([]models.Investment, error) {
	if m.allInvestmentsFn != nil {
		return m.allInvestmentsFn(userID)
	}
	return []models.Investment{}, nil
}

func (m *mockInvestmentService) CancelInvestment(userID, investmentID string) (*lifecycle.Position, error) {
	if m.cancelInvestmentFn != nil {
		return m.cancelInvestmentFn(userID, investmentID)
	}
	return &lifecycle.Position{}, nil
}

func (m *mockInvestmentService) GetPortfolioSummary(userID string) (*portfolio.Summary, error) {
	if m.getPortfolioSummaryFn != nil {
		return m.getPortfolioSummaryFn(userID)
	}
	summary := portfolio.Summarize(nil)
	return &summary, nil
}

var _ services.InvestmentServicer = (*mockInvestmentService)(nil)

func setupInvestmentRouter(handler *InvestmentHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/investments", handler.CreateInvestment)
	auth.GET("/investments", handler.ListInvestments)
	auth.GET("/investments/summary", handler.GetPortfolioSummary)
	auth.GET("/investments/insights", handler.GetPortfolioInsights)
	auth.GET("/investments/:id", handler.GetInvestment)
	auth.PUT("/investments/:id/cancel", handler.CancelInvestment)
	return r
}

func TestInvestmentHandler_CreateInvestment(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotAmount money.Amount
		svc := &mockInvestmentService{
			createInvestmentFn: func(userID, productID string, amount money.Amount) (*lifecycle.Position, error) {
				gotAmount = amount
				return &lifecycle.Position{
					Investment: models.Investment{
						Base:           models.Base{ID: testInvestID},
						UserID:         userID,
						ProductID:      productID,
						Amount:         amount,
						Status:         models.InvestmentActive,
						ExpectedReturn: money.New(5600),
						MaturityDate:   models.NewDate(testNow().AddDate(0, 24, 0)),
					},
					EffectiveStatus: models.InvestmentActive,
				}, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "POST", "/investments", `{"product_id":"`+testProductID+`","amount":5000}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(money.New(5000)) {
			t.Errorf("expected amount 5000, got %s", gotAmount)
		}
		result := parseJSON(t, rec)
		if result["expected_return"] != float64(5600) {
			t.Errorf("expected 5600, got %v", result["expected_return"])
		}
		if result["maturity_date"] != "2027-01-15" {
			t.Errorf("expected maturity 2027-01-15, got %v", result["maturity_date"])
		}
		if result["effective_status"] != "active" {
			t.Errorf("expected active, got %v", result["effective_status"])
		}
	})

	t.Run("returns 400 below minimum", func(t *testing.T) {
		svc := &mockInvestmentService{
			createInvestmentFn: func(string, string, money.Amount) (*lifecycle.Position, error) {
				return nil, apperrors.WithMessage(apperrors.ErrBelowMinimum, "Minimum investment required is $1,000.00")
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "POST", "/investments", `{"product_id":"`+testProductID+`","amount":500}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "BELOW_MINIMUM")
		if msg := result["error"].(map[string]interface{})["message"]; msg != "Minimum investment required is $1,000.00" {
			t.Errorf("unexpected message %v", msg)
		}
	})

	t.Run("returns 400 for malformed input", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockInsightService{}))

		for _, body := range []string{
			`{"amount":5000}`,
			`{"product_id":"not-a-uuid","amount":5000}`,
		} {
			rec := doRequest(r, "POST", "/investments", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", body, rec.Code)
			}
		}
	})

	t.Run("returns INVALID_AMOUNT for non-numeric amounts", func(t *testing.T) {
		called := false
		svc := &mockInvestmentService{
			createInvestmentFn: func(string, string, money.Amount) (*lifecycle.Position, error) {
				called = true
				return nil, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		for _, amount := range []string{`"abc"`, `"lots"`, `true`, `null`, `{}`} {
			body := `{"product_id":"` + testProductID + `","amount":` + amount + `}`
			rec := doRequest(r, "POST", "/investments", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", amount, rec.Code)
				continue
			}
			result := parseJSON(t, rec)
			assertErrorCode(t, result, "INVALID_AMOUNT")
			if msg := result["error"].(map[string]interface{})["message"].(string); strings.Contains(msg, "decimal") {
				t.Errorf("%s: parser detail leaked into message %q", amount, msg)
			}
		}

		rec := doRequest(r, "POST", "/investments", `{"product_id":"`+testProductID+`"}`)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT")
		if called {
			t.Error("service must not be called with an unparsable amount")
		}
	})

	t.Run("accepts amounts given as strings", func(t *testing.T) {
		var gotAmount money.Amount
		svc := &mockInvestmentService{
			createInvestmentFn: func(_, _ string, amount money.Amount) (*lifecycle.Position, error) {
				gotAmount = amount
				return &lifecycle.Position{Investment: models.Investment{Amount: amount}}, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "POST", "/investments", `{"product_id":"`+testProductID+`","amount":"2500.50"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(money.MustParse("2500.50")) {
			t.Errorf("expected amount 2500.50, got %s", gotAmount)
		}
	})

	t.Run("returns 404 for unknown product", func(t *testing.T) {
		svc := &mockInvestmentService{
			createInvestmentFn: func(string, string, money.Amount) (*lifecycle.Position, error) {
				return nil, apperrors.ErrProductNotFound
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "POST", "/investments", `{"product_id":"`+testProductID+`","amount":5000}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PRODUCT_NOT_FOUND")
	})
}

func TestInvestmentHandler_ListInvestments(t *testing.T) {
	t.Run("maps filters", func(t *testing.T) {
		var gotFilter services.InvestmentFilter
		svc := &mockInvestmentService{
			listInvestmentsFn: func(_ string, filter services.InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[lifecycle.Position], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]lifecycle.Position{{EffectiveStatus: models.InvestmentMatured}}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "GET", "/investments?status=matured&type=bond", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Status == nil || *gotFilter.Status != models.InvestmentMatured {
			t.Errorf("expected matured filter, got %v", gotFilter.Status)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.InvestmentTypeBond {
			t.Errorf("expected bond filter, got %v", gotFilter.Type)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 item, got %d", len(data))
		}
	})

	t.Run("returns 400 for unknown status", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockInsightService{}))

		rec := doRequest(r, "GET", "/investments?status=closed", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_GetInvestment(t *testing.T) {
	svc := &mockInvestmentService{
		getInvestmentByIDFn: func(userID, id string) (*lifecycle.Position, error) {
			if userID != testUserID {
				t.Errorf("expected user %s, got %s", testUserID, userID)
			}
			return nil, apperrors.ErrInvestmentNotFound
		},
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

	rec := doRequest(r, "GET", "/investments/"+testInvestID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INVESTMENT_NOT_FOUND")
}

func TestInvestmentHandler_CancelInvestment(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockInvestmentService{
			cancelInvestmentFn: func(_, id string) (*lifecycle.Position, error) {
				return &lifecycle.Position{
					Investment:      models.Investment{Base: models.Base{ID: id}, Status: models.InvestmentCancelled},
					EffectiveStatus: models.InvestmentCancelled,
				}, nil
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "PUT", "/investments/"+testInvestID+"/cancel", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if status := parseJSON(t, rec)["status"]; status != "cancelled" {
			t.Errorf("expected cancelled, got %v", status)
		}
	})

	t.Run("returns 400 when not active", func(t *testing.T) {
		svc := &mockInvestmentService{
			cancelInvestmentFn: func(string, string) (*lifecycle.Position, error) {
				return nil, apperrors.ErrInvalidStateTransition
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockInsightService{}))

		rec := doRequest(r, "PUT", "/investments/"+testInvestID+"/cancel", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_STATE_TRANSITION")
	})
}

func TestInvestmentHandler_GetPortfolioSummary(t *testing.T) {
	r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, &mockInsightService{}))

	rec := doRequest(r, "GET", "/investments/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["investment_count"] != float64(0) || result["total_investment"] != float64(0) {
		t.Errorf("unexpected summary %v", result)
	}
	risk := result["risk_distribution"].(map[string]interface{})
	if len(risk) != 3 {
		t.Errorf("expected all risk buckets, got %v", risk)
	}
}

func TestInvestmentHandler_GetPortfolioInsights(t *testing.T) {
	insights := &mockInsightService{
		getPortfolioInsightsFn: func(string) ([]insight.Insight, error) {
			return []insight.Insight{{Type: insight.TypePortfolio, Title: "Start Your Investment Journey", Priority: insight.PriorityHigh}}, nil
		},
	}
	r := setupInvestmentRouter(NewInvestmentHandler(&mockInvestmentService{}, insights))

	rec := doRequest(r, "GET", "/investments/insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := parseJSONArray(t, rec)
	if len(items) != 1 || items[0].(map[string]interface{})["title"] != "Start Your Investment Journey" {
		t.Errorf("unexpected insights %v", items)
	}
}
