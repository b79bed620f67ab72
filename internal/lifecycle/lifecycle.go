// Package lifecycle creates and cancels investments and values them over
// time. An investment moves from active to cancelled on request, and reads
// as matured once its maturity date has passed; the matured state is derived
// when a record is read and never written back.
package lifecycle

import (
	"time"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/yield"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Valuation is an investment's value at a point in time.
type Valuation struct {
	CurrentValue     money.Amount `json:"current_value"`
	Profit           money.Amount `json:"profit"`
	ProfitPercentage float64      `json:"profit_percentage"`
}

// Tenure is the time left until maturity.
type Tenure struct {
	Days      int  `json:"days"`
	Months    int  `json:"months"`
	IsMatured bool `json:"is_matured"`
}

// Position is an investment as presented to its owner at a point in time.
type Position struct {
	models.Investment
	EffectiveStatus models.InvestmentStatus `json:"effective_status"`
	Valuation       Valuation               `json:"valuation"`
	RemainingTenure Tenure                  `json:"remaining_tenure"`
}

// Create opens an active investment in product. The product terms are
// copied onto the record together with the expected return and maturity
// date, so later catalog edits leave it untouched.
func Create(product *models.Product, userID string, amount money.Amount, investedAt time.Time) (*models.Investment, error) {
	if product == nil {
		return nil, apperrors.ErrProductNotFound
	}
	// The stored principal is the one that is validated and earns the return.
	amount = amount.Rounded()
	if err := yield.ValidateAmount(amount, product.MinInvestment, product.MaxInvestment); err != nil {
		return nil, err
	}

	ret := yield.ExpectedReturn(amount, product.AnnualYield, product.TenureMonths)
	return &models.Investment{
		UserID:         userID,
		ProductID:      product.ID,
		Amount:         amount,
		InvestedAt:     investedAt.UTC(),
		Status:         models.InvestmentActive,
		ExpectedReturn: ret.ExpectedAmount,
		MaturityDate:   yield.MaturityDate(investedAt, product.TenureMonths),
		ProductName:    product.Name,
		InvestmentType: product.Type,
		RiskLevel:      product.RiskLevel,
		AnnualYield:    product.AnnualYield,
		TenureMonths:   product.TenureMonths,
	}, nil
}

// Cancel returns a cancelled copy of inv. Only active investments can be
// cancelled; an investment past its maturity date counts as matured.
func Cancel(inv models.Investment, now time.Time) (models.Investment, error) {
	if EffectiveStatus(&inv, now) != models.InvestmentActive {
		return inv, apperrors.ErrInvalidStateTransition
	}
	inv.Status = models.InvestmentCancelled
	return inv, nil
}

// EffectiveStatus is the stored status, except that an active investment
// reads as matured from its maturity date on.
func EffectiveStatus(inv *models.Investment, now time.Time) models.InvestmentStatus {
	if inv.Status == models.InvestmentActive && reachedMaturity(inv, now) {
		return models.InvestmentMatured
	}
	return inv.Status
}

// CurrentValue pro-rates the expected profit linearly between the investment
// date and the maturity date. Cancelled investments are worth their principal.
func CurrentValue(inv *models.Investment, now time.Time) Valuation {
	if inv.Status == models.InvestmentCancelled {
		return Valuation{CurrentValue: inv.Amount, Profit: money.Zero}
	}

	expected := inv.ExpectedReturn
	if expected.IsZero() {
		expected = inv.Amount
	}
	fullProfit := expected.Sub(inv.Amount)

	if inv.Status == models.InvestmentMatured || reachedMaturity(inv, now) {
		return valuation(inv.Amount, fullProfit)
	}

	total := inv.MaturityDate.Time().Sub(inv.InvestedAt)
	if total < day {
		total = day
	}
	elapsed := now.Sub(inv.InvestedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}

	ratio := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(total)))
	return valuation(inv.Amount, fullProfit.Mul(ratio).Rounded())
}

func valuation(amount, profit money.Amount) Valuation {
	return Valuation{
		CurrentValue:     amount.Add(profit).Rounded(),
		Profit:           profit.Rounded(),
		ProfitPercentage: money.Percent(profit.Decimal(), amount.Decimal()),
	}
}

// RemainingTenure counts whole days (rounded up) and 30-day months left.
func RemainingTenure(inv *models.Investment, now time.Time) Tenure {
	if inv.Status != models.InvestmentActive || reachedMaturity(inv, now) {
		return Tenure{IsMatured: true}
	}
	remaining := inv.MaturityDate.Time().Sub(now)
	days := int((remaining + day - 1) / day)
	return Tenure{Days: days, Months: days / 30}
}

// Evaluate bundles the derived read-time facts about inv.
func Evaluate(inv models.Investment, now time.Time) Position {
	return Position{
		Investment:      inv,
		EffectiveStatus: EffectiveStatus(&inv, now),
		Valuation:       CurrentValue(&inv, now),
		RemainingTenure: RemainingTenure(&inv, now),
	}
}

// reachedMaturity treats a missing maturity date as already reached.
func reachedMaturity(inv *models.Investment, now time.Time) bool {
	return inv.MaturityDate.IsZero() || !now.Before(inv.MaturityDate.Time())
}
