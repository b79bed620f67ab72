package services

import (
	"context"

	"yieldvault/internal/insight"
	"yieldvault/internal/models"
)

// errorSummaryWindow is how many recent failed requests the error summary reads.
const errorSummaryWindow = 20

// insightService gathers a user's data and hands it to the insight engine.
type insightService struct {
	engine      *insight.Engine
	users       UserServicer
	products    ProductServicer
	investments InvestmentServicer
	logs        TransactionLogServicer
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(engine *insight.Engine, users UserServicer, products ProductServicer, investments InvestmentServicer, logs TransactionLogServicer) InsightServicer {
	return &insightService{
		engine:      engine,
		users:       users,
		products:    products,
		investments: investments,
		logs:        logs,
	}
}

// AnalyzePassword scores a candidate password. It never fails.
func (s *insightService) AnalyzePassword(ctx context.Context, password string) insight.PasswordAnalysis {
	return s.engine.AnalyzePassword(ctx, password)
}

// GetRecommendations suggests catalog products matching the user's risk
// appetite and current active holdings.
func (s *insightService) GetRecommendations(ctx context.Context, userID string) ([]models.Product, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.products.AllProducts()
	if err != nil {
		return nil, err
	}
	investments, err := s.investments.AllInvestments(userID)
	if err != nil {
		return nil, err
	}

	held := make([]models.Investment, 0, len(investments))
	for _, inv := range investments {
		if inv.IsActive() {
			held = append(held, inv)
		}
	}
	return s.engine.Recommend(ctx, user.RiskAppetite, catalog, held), nil
}

// GetPortfolioInsights returns advice on the user's whole portfolio.
func (s *insightService) GetPortfolioInsights(ctx context.Context, userID string) ([]insight.Insight, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	investments, err := s.investments.AllInvestments(userID)
	if err != nil {
		return nil, err
	}
	return s.engine.PortfolioInsights(ctx, investments, user.RiskAppetite), nil
}

// GetErrorSummary explains the user's most recent failed requests.
func (s *insightService) GetErrorSummary(ctx context.Context, userID string) (*insight.ErrorSummary, error) {
	logs, err := s.logs.List(LogFilter{UserID: &userID, ErrorsOnly: true, Limit: errorSummaryWindow})
	if err != nil {
		return nil, err
	}
	summary := s.engine.SummarizeErrors(ctx, logs)
	return &summary, nil
}
