package insight

import (
	"context"
	"fmt"

	"yieldvault/internal/models"
)

var typeNames = map[models.InvestmentType]string{
	models.InvestmentTypeBond:         "bond investment",
	models.InvestmentTypeFixedDeposit: "fixed deposit",
	models.InvestmentTypeMutualFund:   "mutual fund",
	models.InvestmentTypeETF:          "exchange-traded fund",
	models.InvestmentTypeOther:        "investment product",
}

var riskTones = map[models.RiskLevel]string{
	models.RiskLow:      "safe and steady",
	models.RiskModerate: "balanced risk-reward",
	models.RiskHigh:     "growth-focused",
}

var investorProfiles = map[models.RiskLevel]string{
	models.RiskLow:      "conservative",
	models.RiskModerate: "moderate",
	models.RiskHigh:     "aggressive",
}

// DescribeProduct writes a short marketing description of a product.
func (e *Engine) DescribeProduct(ctx context.Context, p models.Product) string {
	return withFallback(ctx, e, CapabilityDescription,
		func(ctx context.Context) (string, error) {
			return e.generate(ctx, descriptionPrompt(p))
		},
		func() string { return describeProduct(p) },
	)
}

func describeProduct(p models.Product) string {
	kind, ok := typeNames[p.Type]
	if !ok {
		kind = typeNames[models.InvestmentTypeOther]
	}
	tone, ok := riskTones[p.RiskLevel]
	if !ok {
		tone = riskTones[models.RiskModerate]
	}
	investor, ok := investorProfiles[p.RiskLevel]
	if !ok {
		investor = investorProfiles[models.RiskModerate]
	}
	return fmt.Sprintf("A %s %s offering %.2f%% annual returns over %d months. "+
		"Minimum investment of %s makes this suitable for %s investors.",
		tone, kind, p.AnnualYield, p.TenureMonths, p.MinInvestment.Format(), investor)
}
