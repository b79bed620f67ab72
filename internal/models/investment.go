package models

import (
	"time"

	"yieldvault/internal/money"
)

// InvestmentStatus is the lifecycle state of an investment.
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "active"
	InvestmentMatured   InvestmentStatus = "matured"
	InvestmentCancelled InvestmentStatus = "cancelled"
)

// Investment is a user's position in a catalog product. The product terms in
// effect at creation are frozen onto the row so later catalog edits never
// change its expected return, maturity or analytics.
type Investment struct {
	Base
	UserID         string           `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID      string           `gorm:"type:uuid;not null;index" json:"product_id"`
	Amount         money.Amount     `gorm:"type:numeric(12,2);not null" json:"amount"`
	InvestedAt     time.Time        `gorm:"not null;index" json:"invested_at"`
	Status         InvestmentStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	ExpectedReturn money.Amount     `gorm:"type:numeric(12,2)" json:"expected_return"`
	MaturityDate   Date             `gorm:"type:date" json:"maturity_date"`

	// Product snapshot
	ProductName    string         `gorm:"size:255;not null" json:"product_name"`
	InvestmentType InvestmentType `gorm:"size:32;not null" json:"investment_type"`
	RiskLevel      RiskLevel      `gorm:"size:16;not null" json:"risk_level"`
	AnnualYield    float64        `gorm:"type:numeric(5,2);not null" json:"annual_yield"`
	TenureMonths   int            `gorm:"not null" json:"tenure_months"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// IsActive reports whether the stored status is active.
func (i *Investment) IsActive() bool {
	return i.Status == InvestmentActive
}
