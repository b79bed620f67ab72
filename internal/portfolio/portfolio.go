// Package portfolio aggregates a user's investments into totals and
// percentage breakdowns by risk level and investment type.
package portfolio

import (
	"yieldvault/internal/models"
	"yieldvault/internal/money"

	"github.com/shopspring/decimal"
)

// Summary is recomputed on every request and never stored.
type Summary struct {
	TotalInvestment     money.Amount                      `json:"total_investment"`
	TotalExpectedReturn money.Amount                      `json:"total_expected_return"`
	InvestmentCount     int                               `json:"investment_count"`
	ActiveInvestments   int                               `json:"active_investments"`
	RiskDistribution    map[models.RiskLevel]float64      `json:"risk_distribution"`
	TypeDistribution    map[models.InvestmentType]float64 `json:"type_distribution"`
}

// Summarize totals amounts and expected returns and spreads the invested
// amount over risk levels and types using each investment's frozen product
// terms. Every known bucket is present; all are zero for an empty portfolio.
func Summarize(investments []models.Investment) Summary {
	total := decimal.Zero
	expected := decimal.Zero
	byRisk := make(map[models.RiskLevel]decimal.Decimal, len(models.RiskLevels))
	byType := make(map[models.InvestmentType]decimal.Decimal, len(models.InvestmentTypes))

	summary := Summary{InvestmentCount: len(investments)}
	for i := range investments {
		inv := &investments[i]
		amount := inv.Amount.Decimal()
		ret := inv.ExpectedReturn.Decimal()
		if inv.ExpectedReturn.IsZero() {
			ret = amount
		}

		total = total.Add(amount)
		expected = expected.Add(ret)
		if inv.Status == models.InvestmentActive {
			summary.ActiveInvestments++
		}

		risk := inv.RiskLevel
		if !risk.Valid() {
			risk = models.RiskModerate
		}
		kind := inv.InvestmentType
		if !kind.Valid() {
			kind = models.InvestmentTypeOther
		}
		byRisk[risk] = byRisk[risk].Add(amount)
		byType[kind] = byType[kind].Add(amount)
	}

	summary.TotalInvestment = money.New(total).Rounded()
	summary.TotalExpectedReturn = money.New(expected).Rounded()
	summary.RiskDistribution = make(map[models.RiskLevel]float64, len(models.RiskLevels))
	for _, r := range models.RiskLevels {
		summary.RiskDistribution[r] = money.Percent(byRisk[r], total)
	}
	summary.TypeDistribution = make(map[models.InvestmentType]float64, len(models.InvestmentTypes))
	for _, k := range models.InvestmentTypes {
		summary.TypeDistribution[k] = money.Percent(byType[k], total)
	}
	return summary
}
