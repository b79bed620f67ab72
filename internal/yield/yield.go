// Package yield holds the fixed-term arithmetic: expected return, maturity
// date and investment amount validation. Every function is pure.
package yield

import (
	"fmt"
	"time"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
	"yieldvault/internal/money"

	"github.com/shopspring/decimal"
)

// Product term bounds.
const (
	MinTenureMonths = 1
	MaxTenureMonths = 600
	MinAnnualYield  = 0.01
	MaxAnnualYield  = 99.99
)

var (
	monthsPerYearPercent = decimal.NewFromInt(1200)
	minProductInvestment = money.New(1)

	// DefaultMinInvestment applies to products created without a minimum.
	DefaultMinInvestment = money.New(1000)
)

// Return is the projected outcome of holding principal to maturity.
type Return struct {
	Principal      money.Amount `json:"principal"`
	TotalReturn    money.Amount `json:"total_return"`
	ExpectedAmount money.Amount `json:"expected_amount"`
	MonthlyReturn  money.Amount `json:"monthly_return"`
}

// ExpectedReturn computes simple, non-compounding interest:
//
//	monthly = principal * yield / 100 / 12
//	total   = monthly * tenureMonths
//
// The products are exact in decimal; each output is then rounded once.
func ExpectedReturn(principal money.Amount, annualYieldPercent float64, tenureMonths int) Return {
	p := principal.Decimal()
	monthly := p.Mul(decimal.NewFromFloat(annualYieldPercent)).Div(monthsPerYearPercent)
	total := p.Mul(decimal.NewFromFloat(annualYieldPercent)).
		Mul(decimal.NewFromInt(int64(tenureMonths))).
		Div(monthsPerYearPercent)

	totalReturn := money.New(money.Round(total))
	return Return{
		Principal:      principal.Rounded(),
		TotalReturn:    totalReturn,
		ExpectedAmount: principal.Add(totalReturn).Rounded(),
		MonthlyReturn:  money.New(money.Round(monthly)),
	}
}

// ValidateAmount checks amount against a product's investment bounds. A nil
// max means the product has no upper bound.
func ValidateAmount(amount, minimum money.Amount, maximum *money.Amount) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if amount.LessThan(minimum) {
		return apperrors.WithMessage(apperrors.ErrBelowMinimum,
			fmt.Sprintf("Minimum investment required is %s", minimum.Format()))
	}
	if maximum != nil && amount.GreaterThan(*maximum) {
		return apperrors.WithMessage(apperrors.ErrAboveMaximum,
			fmt.Sprintf("Maximum investment allowed is %s", maximum.Format()))
	}
	return nil
}

// ParseAmount reads a user supplied amount. Anything that is not a decimal
// number is reported as ErrInvalidAmount.
func ParseAmount(raw string) (money.Amount, error) {
	a, err := money.Parse(raw)
	if err != nil {
		return money.Zero, apperrors.Wrap(apperrors.ErrInvalidAmount, err)
	}
	return a, nil
}

// MaturityDate advances investedAt by tenureMonths calendar months and drops
// the time of day. Day overflow normalizes the way time.AddDate does, so
// Jan 31 plus one month lands in early March.
func MaturityDate(investedAt time.Time, tenureMonths int) models.Date {
	return models.NewDate(investedAt.UTC().AddDate(0, tenureMonths, 0))
}

// ValidateProductTerms enforces the catalog constraints on a product before
// it is stored.
func ValidateProductTerms(p *models.Product) error {
	switch {
	case p == nil:
		return apperrors.ErrInvalidProduct
	case !p.Type.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidProduct, "Unknown investment type")
	case !p.RiskLevel.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidProduct, "Unknown risk level")
	case p.TenureMonths < MinTenureMonths || p.TenureMonths > MaxTenureMonths:
		return apperrors.WithMessage(apperrors.ErrInvalidProduct,
			fmt.Sprintf("Tenure must be between %d and %d months", MinTenureMonths, MaxTenureMonths))
	case p.AnnualYield < MinAnnualYield || p.AnnualYield > MaxAnnualYield:
		return apperrors.WithMessage(apperrors.ErrInvalidProduct,
			fmt.Sprintf("Annual yield must be between %.2f and %.2f", MinAnnualYield, MaxAnnualYield))
	case p.MinInvestment.LessThan(minProductInvestment):
		return apperrors.WithMessage(apperrors.ErrInvalidProduct, "Minimum investment must be at least $1.00")
	case p.MaxInvestment != nil && !p.MaxInvestment.GreaterThan(p.MinInvestment):
		return apperrors.WithMessage(apperrors.ErrInvalidProduct,
			"Maximum investment must be greater than minimum investment")
	}
	return nil
}
