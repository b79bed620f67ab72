package services

import (
	"context"
	"time"

	"yieldvault/internal/insight"
	"yieldvault/internal/lifecycle"
	"yieldvault/internal/logstats"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/pagination"
	"yieldvault/internal/portfolio"
)

// UserServicer defines the contract for reading and updating user profiles.
type UserServicer interface {
	GetUserByID(id string) (*models.User, error)
	UpdateRiskAppetite(id string, appetite models.RiskLevel) (*models.User, error)
}

// ProductFilter holds optional filter parameters for listing products.
type ProductFilter struct {
	Type      *models.InvestmentType
	RiskLevel *models.RiskLevel
	MinYield  *float64
	MaxAmount *money.Amount
}

// ProductUpdate holds the fields of a product to change. Nil fields are left
// as they are.
type ProductUpdate struct {
	Name          *string
	Type          *models.InvestmentType
	TenureMonths  *int
	AnnualYield   *float64
	RiskLevel     *models.RiskLevel
	MinInvestment *money.Amount
	MaxInvestment *money.Amount
	Description   *string

	// ClearMaxInvestment removes the upper bound. It wins over MaxInvestment.
	ClearMaxInvestment bool
}

// ProductServicer defines the contract for the investment product catalog.
type ProductServicer interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	GetProductByID(id string) (*models.Product, error)
	ListProducts(filter ProductFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
	AllProducts() ([]models.Product, error)
	TopProducts(limit int) ([]models.Product, error)
	UpdateProduct(id string, update ProductUpdate) (*models.Product, error)
	DeleteProduct(id string) error
}

// InvestmentFilter holds optional filter parameters for listing investments.
type InvestmentFilter struct {
	Status *models.InvestmentStatus
	Type   *models.InvestmentType
}

// InvestmentServicer defines the contract for a user's investments.
type InvestmentServicer interface {
	CreateInvestment(userID, productID string, amount money.Amount) (*lifecycle.Position, error)
	GetInvestmentByID(userID, investmentID string) (*lifecycle.Position, error)
	ListInvestments(userID string, filter InvestmentFilter, page pagination.PageRequest) (*pagination.PageResponse[lifecycle.Position], error)
	AllInvestments(userID string) ([]models.Investment, error)
	CancelInvestment(userID, investmentID string) (*lifecycle.Position, error)
	GetPortfolioSummary(userID string) (*portfolio.Summary, error)
}

// LogFilter holds optional filter parameters for listing transaction logs.
type LogFilter struct {
	UserID     *string
	Method     *string
	StatusCode *int
	Since      *time.Time
	ErrorsOnly bool
	Limit      int
}

// TransactionLogServicer defines the contract for the API transaction log.
type TransactionLogServicer interface {
	Record(entry *models.TransactionLog) error
	List(filter LogFilter) ([]models.TransactionLog, error)
	Summary(userID string, days int) (*logstats.Summary, error)
	PurgeOlderThan(cutoff time.Time) (int64, error)
}

// InsightServicer defines the contract for advisory features backed by the
// insight engine.
type InsightServicer interface {
	AnalyzePassword(ctx context.Context, password string) insight.PasswordAnalysis
	GetRecommendations(ctx context.Context, userID string) ([]models.Product, error)
	GetPortfolioInsights(ctx context.Context, userID string) ([]insight.Insight, error)
	GetErrorSummary(ctx context.Context, userID string) (*insight.ErrorSummary, error)
}

// ProductDescriber writes a description for a product that has none.
type ProductDescriber interface {
	DescribeProduct(ctx context.Context, p models.Product) string
}
