package models

import "yieldvault/internal/money"

// InvestmentType is the kind of instrument a product represents.
type InvestmentType string

const (
	InvestmentTypeBond         InvestmentType = "bond"
	InvestmentTypeFixedDeposit InvestmentType = "fixed_deposit"
	InvestmentTypeMutualFund   InvestmentType = "mutual_fund"
	InvestmentTypeETF          InvestmentType = "etf"
	InvestmentTypeOther        InvestmentType = "other"
)

// InvestmentTypes lists every type in display order.
var InvestmentTypes = []InvestmentType{
	InvestmentTypeBond,
	InvestmentTypeFixedDeposit,
	InvestmentTypeMutualFund,
	InvestmentTypeETF,
	InvestmentTypeOther,
}

// Valid reports whether t is a known investment type.
func (t InvestmentType) Valid() bool {
	for _, known := range InvestmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RiskLevel is shared by products and by a user's risk appetite.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// RiskLevels lists every risk level from safest to riskiest.
var RiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh}

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskModerate || r == RiskHigh
}

// Product is an entry in the investment catalog.
type Product struct {
	Base
	Name          string         `gorm:"size:255;not null" json:"name"`
	Type          InvestmentType `gorm:"column:investment_type;size:32;not null;index" json:"investment_type"`
	TenureMonths  int            `gorm:"not null" json:"tenure_months"`
	AnnualYield   float64        `gorm:"type:numeric(5,2);not null;index" json:"annual_yield"`
	RiskLevel     RiskLevel      `gorm:"size:16;not null;index" json:"risk_level"`
	MinInvestment money.Amount   `gorm:"type:numeric(12,2);not null;default:1000" json:"min_investment"`
	MaxInvestment *money.Amount  `gorm:"type:numeric(12,2)" json:"max_investment"`
	Description   string         `gorm:"type:text" json:"description"`
}

// TableName keeps the catalog table apart from the user-facing investments.
func (Product) TableName() string {
	return "investment_products"
}
