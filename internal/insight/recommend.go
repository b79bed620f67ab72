package insight

import (
	"context"
	"sort"

	"yieldvault/internal/models"
)

// MaxRecommendations caps the rule-based recommendation list.
const MaxRecommendations = 3

// Compatible reports whether a product of the given risk suits an investor
// with the given appetite. Low appetite excludes high risk and high appetite
// excludes low risk; moderate accepts everything.
func Compatible(appetite, risk models.RiskLevel) bool {
	switch appetite {
	case models.RiskLow:
		return risk != models.RiskHigh
	case models.RiskHigh:
		return risk != models.RiskLow
	}
	return true
}

// Recommend picks products for an investor from the catalog, taking their
// current holdings into account. The result never contains a product whose
// risk is incompatible with appetite.
func (e *Engine) Recommend(ctx context.Context, appetite models.RiskLevel, catalog []models.Product, held []models.Investment) []models.Product {
	return withFallback(ctx, e, CapabilityRecommendation,
		func(ctx context.Context) ([]models.Product, error) {
			var ids []string
			if err := e.generateJSON(ctx, recommendationPrompt(appetite, catalog, held), &ids); err != nil {
				return nil, err
			}
			byID := make(map[string]models.Product, len(catalog))
			for _, p := range catalog {
				byID[p.ID] = p
			}
			seen := make(map[string]bool, len(ids))
			picked := make([]models.Product, 0, len(ids))
			for _, id := range ids {
				p, ok := byID[id]
				if !ok || seen[id] || !Compatible(appetite, p.RiskLevel) {
					continue
				}
				seen[id] = true
				picked = append(picked, p)
			}
			if len(picked) == 0 {
				return nil, malformed("no usable product ids in %v", ids)
			}
			return picked, nil
		},
		func() []models.Product { return recommend(appetite, catalog, held) },
	)
}

// recommend keeps compatible products, prefers types not already held, and
// returns the highest yields first.
func recommend(appetite models.RiskLevel, catalog []models.Product, held []models.Investment) []models.Product {
	heldTypes := make(map[models.InvestmentType]bool, len(held))
	for _, inv := range held {
		heldTypes[inv.InvestmentType] = true
	}

	var compatible, diversifying []models.Product
	for _, p := range catalog {
		if !Compatible(appetite, p.RiskLevel) {
			continue
		}
		compatible = append(compatible, p)
		if !heldTypes[p.Type] {
			diversifying = append(diversifying, p)
		}
	}

	candidates := diversifying
	if len(candidates) == 0 {
		candidates = compatible
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AnnualYield != candidates[j].AnnualYield {
			return candidates[i].AnnualYield > candidates[j].AnnualYield
		}
		return candidates[i].Name < candidates[j].Name
	})
	if len(candidates) > MaxRecommendations {
		candidates = candidates[:MaxRecommendations]
	}
	if candidates == nil {
		candidates = []models.Product{}
	}
	return candidates
}
