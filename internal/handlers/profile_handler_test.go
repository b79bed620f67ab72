package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
	"yieldvault/internal/services"
)

// --- mock user service ---

type mockUserService struct {
	getUserByIDFn        func(id string) (*models.User, error)
	updateRiskAppetiteFn func(id string, appetite models.RiskLevel) (*models.User, error)
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}, RiskAppetite: models.RiskModerate}, nil
}

func (m *mockUserService) UpdateRiskAppetite(id string, appetite models.RiskLevel) (*models.User, error) {
	if m.updateRiskAppetiteFn != nil {
		return m.updateRiskAppetiteFn(id, appetite)
	}
	return &models.User{Base: models.Base{ID: id}, RiskAppetite: appetite}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

func setupProfileRouter(handler *ProfileHandler) *gin.Engine {
	r := gin.New()
	r.GET("/profile", injectUserID(testUserID), handler.GetProfile)
	r.PUT("/profile/risk-appetite", injectUserID(testUserID), handler.UpdateRiskAppetite)
	r.GET("/anonymous/profile", handler.GetProfile)
	return r
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with profile", func(t *testing.T) {
		svc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{
					Base:         models.Base{ID: id},
					Email:        "ada@example.com",
					FirstName:    "Ada",
					RiskAppetite: models.RiskLow,
				}, nil
			},
		}
		r := setupProfileRouter(NewProfileHandler(svc))

		rec := doRequest(r, "GET", "/profile", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["id"] != testUserID || result["risk_appetite"] != "low" || result["email"] != "ada@example.com" {
			t.Errorf("unexpected profile %v", result)
		}
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		svc := &mockUserService{
			getUserByIDFn: func(string) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupProfileRouter(NewProfileHandler(svc))

		rec := doRequest(r, "GET", "/profile", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})

	t.Run("returns 401 without user", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockUserService{}))

		rec := doRequest(r, "GET", "/anonymous/profile", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestProfileHandler_UpdateRiskAppetite(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockUserService{}))

		rec := doRequest(r, "PUT", "/profile/risk-appetite", `{"risk_appetite":"high"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := parseJSON(t, rec)["risk_appetite"]; got != "high" {
			t.Errorf("expected high, got %v", got)
		}
	})

	t.Run("returns 400 for unknown level", func(t *testing.T) {
		r := setupProfileRouter(NewProfileHandler(&mockUserService{}))

		rec := doRequest(r, "PUT", "/profile/risk-appetite", `{"risk_appetite":"reckless"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
