package services

import (
	"errors"

	"gorm.io/gorm"

	"yieldvault/internal/clock"
	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/lifecycle"
	"yieldvault/internal/metrics"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/pagination"
	"yieldvault/internal/portfolio"
)

// investmentService manages a user's investments. Every read evaluates the
// stored rows against the clock, so maturity is never written back.
type investmentService struct {
	db      *gorm.DB
	clock   clock.Clock
	metrics *metrics.Collector
}

// NewInvestmentService creates a new InvestmentServicer. collector may be nil.
func NewInvestmentService(db *gorm.DB, clk clock.Clock, collector *metrics.Collector) InvestmentServicer {
	if clk == nil {
		clk = clock.System{}
	}
	return &investmentService{db: db, clock: clk, metrics: collector}
}

// CreateInvestment opens an investment of amount in the given product.
func (s *investmentService) CreateInvestment(userID, productID string, amount money.Amount) (*lifecycle.Position, error) {
	var user models.User
	if err := s.db.Select("id").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var product models.Product
	if err := s.db.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.clock.Now()
	inv, err := lifecycle.Create(&product, userID, amount, now)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(inv).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.metrics.InvestmentCreated()

	inv.Product = &product
	position := lifecycle.Evaluate(*inv, now)
	return &position, nil
}

// GetInvestmentByID retrieves one of the user's investments. Investments of
// other users read as not found.
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*lifecycle.Position, error) {
	inv, err := s.find(userID, investmentID)
	if err != nil {
		return nil, err
	}
	position := lifecycle.Evaluate(*inv, s.clock.Now())
	return &position, nil
}

func (s *investmentService) find(userID, investmentID string) (*models.Investment, error) {
	var inv models.Investment
	err := s.db.Preload("Product", unscoped).
		Where("id = ? AND user_id = ?", investmentID, userID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inv, nil
}

// ListInvestments returns a page of the user's investments, newest first.
// The status filter matches the effective status.
func (s *investmentService) ListInvestments(userID string, filter InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[lifecycle.Position], error) {
	page.Defaults()
	now := s.clock.Now()

	query := s.db.Model(&models.Investment{}).Where("user_id = ?", userID)
	if filter.Status != nil {
		query = scopeStatus(query, *filter.Status, models.NewDate(now))
	}
	if filter.Type != nil {
		query = query.Where("investment_type = ?", *filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := query.Preload("Product", unscoped).
		Order("invested_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	positions := make([]lifecycle.Position, len(investments))
	for i, inv := range investments {
		positions[i] = lifecycle.Evaluate(inv, now)
	}
	resp := pagination.NewPageResponse(positions, page.Page, page.PageSize, total)
	return &resp, nil
}

// scopeStatus narrows query to rows whose effective status is status on the
// given day.
func scopeStatus(query *gorm.DB, status models.InvestmentStatus, today models.Date) *gorm.DB {
	switch status {
	case models.InvestmentActive:
		return query.Where("status = ? AND maturity_date > ?", models.InvestmentActive, today)
	case models.InvestmentMatured:
		return query.Where("status = ? OR (status = ? AND (maturity_date <= ? OR maturity_date IS NULL))",
			models.InvestmentMatured, models.InvestmentActive, today)
	default:
		return query.Where("status = ?", status)
	}
}

// AllInvestments returns every investment of the user with its effective
// status applied, newest first.
func (s *investmentService) AllInvestments(userID string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Order("invested_at DESC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.clock.Now()
	for i := range investments {
		investments[i].Status = lifecycle.EffectiveStatus(&investments[i], now)
	}
	return investments, nil
}

// CancelInvestment cancels an active investment of the user.
func (s *investmentService) CancelInvestment(userID, investmentID string) (*lifecycle.Position, error) {
	inv, err := s.find(userID, investmentID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cancelled, err := lifecycle.Cancel(*inv, now)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&models.Investment{}).
		Where("id = ? AND status = ?", inv.ID, models.InvestmentActive).
		Update("status", cancelled.Status)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrInvalidStateTransition
	}
	s.metrics.InvestmentCancelled()

	position := lifecycle.Evaluate(cancelled, now)
	return &position, nil
}

// GetPortfolioSummary aggregates all of the user's investments.
func (s *investmentService) GetPortfolioSummary(userID string) (*portfolio.Summary, error) {
	investments, err := s.AllInvestments(userID)
	if err != nil {
		return nil, err
	}
	summary := portfolio.Summarize(investments)
	return &summary, nil
}

// unscoped preloads products even after they were removed from the catalog.
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
