package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/yield"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// FixedNow is the reference instant used by tests that pin the clock.
func FixedNow() time.Time {
	return time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
}

// CreateTestUser creates a moderate-appetite user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithAppetite(t, db, models.RiskModerate)
}

// CreateTestUserWithAppetite creates a user with the given risk appetite.
func CreateTestUserWithAppetite(t *testing.T, db *gorm.DB, appetite models.RiskLevel) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		Email:        fmt.Sprintf("user%d@test.com", n),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
		RiskAppetite: appetite,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// NewTestProduct returns an unsaved fixed deposit paying 6% over 24 months
// with a 1,000 minimum and 100,000 maximum.
func NewTestProduct() *models.Product {
	maxInvestment := money.New(100000)
	return &models.Product{
		Name:          fmt.Sprintf("Test Deposit %d", nextID()),
		Type:          models.InvestmentTypeFixedDeposit,
		TenureMonths:  24,
		AnnualYield:   6.0,
		RiskLevel:     models.RiskLow,
		MinInvestment: money.New(1000),
		MaxInvestment: &maxInvestment,
		Description:   "Test product",
	}
}

// CreateTestProduct saves NewTestProduct.
func CreateTestProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	return CreateTestProductWith(t, db, func(*models.Product) {})
}

// CreateTestProductWith saves NewTestProduct after applying mutate to it.
func CreateTestProductWith(t *testing.T, db *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := NewTestProduct()
	mutate(product)
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestInvestment saves an active investment of amount in product,
// invested at investedAt, with the product terms frozen onto the row.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string, product *models.Product, amount int64, investedAt time.Time) *models.Investment {
	t.Helper()

	principal := money.New(amount)
	ret := yield.ExpectedReturn(principal, product.AnnualYield, product.TenureMonths)
	inv := &models.Investment{
		UserID:         userID,
		ProductID:      product.ID,
		Amount:         principal,
		InvestedAt:     investedAt.UTC(),
		Status:         models.InvestmentActive,
		ExpectedReturn: ret.ExpectedAmount,
		MaturityDate:   yield.MaturityDate(investedAt, product.TenureMonths),
		ProductName:    product.Name,
		InvestmentType: product.Type,
		RiskLevel:      product.RiskLevel,
		AnnualYield:    product.AnnualYield,
		TenureMonths:   product.TenureMonths,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestLog saves a transaction log row with the given outcome and time.
func CreateTestLog(t *testing.T, db *gorm.DB, userID *string, method, endpoint string, status int, message string, at time.Time) *models.TransactionLog {
	t.Helper()

	entry := &models.TransactionLog{
		UserID:     userID,
		Endpoint:   endpoint,
		HTTPMethod: method,
		StatusCode: status,
		CreatedAt:  at.UTC(),
	}
	if message != "" {
		entry.ErrorMessage = &message
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	return entry
}
