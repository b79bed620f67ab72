package insight

import (
	"context"
	"fmt"

	"yieldvault/internal/models"
	"yieldvault/internal/money"
)

// Type is the subject of an insight.
type Type string

const (
	TypePortfolio      Type = "portfolio"
	TypeRecommendation Type = "recommendation"
	TypeRisk           Type = "risk"
	TypePerformance    Type = "performance"
)

// Priority ranks insights for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Insight is one piece of portfolio advice.
type Insight struct {
	Type     Type     `json:"type"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Action   string   `json:"action,omitempty"`
	Priority Priority `json:"priority"`
}

// Rule thresholds for the local insights.
const (
	highRiskConcentration = 0.7
	growingPortfolioBelow = 10000
)

func (i Insight) valid() bool {
	switch i.Type {
	case TypePortfolio, TypeRecommendation, TypeRisk, TypePerformance:
	default:
		return false
	}
	switch i.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return false
	}
	return i.Title != "" && i.Content != ""
}

// PortfolioInsights comments on a portfolio relative to the owner's risk
// appetite.
func (e *Engine) PortfolioInsights(ctx context.Context, investments []models.Investment, appetite models.RiskLevel) []Insight {
	return withFallback(ctx, e, CapabilityPortfolio,
		func(ctx context.Context) ([]Insight, error) {
			var out []Insight
			if err := e.generateJSON(ctx, portfolioPrompt(investments, appetite), &out); err != nil {
				return nil, err
			}
			if len(out) == 0 {
				return nil, malformed("no insights")
			}
			for _, in := range out {
				if !in.valid() {
					return nil, malformed("invalid insight %+v", in)
				}
			}
			return out, nil
		},
		func() []Insight { return portfolioInsights(investments, appetite) },
	)
}

func portfolioInsights(investments []models.Investment, appetite models.RiskLevel) []Insight {
	if len(investments) == 0 {
		return []Insight{{
			Type:     TypePortfolio,
			Title:    "Start Your Investment Journey",
			Content:  "Begin building wealth by exploring our investment products tailored to your risk appetite.",
			Action:   "Browse products",
			Priority: PriorityHigh,
		}}
	}

	total := money.Zero
	var active, highRisk, misaligned int
	for _, inv := range investments {
		total = total.Add(inv.Amount)
		if inv.Status == models.InvestmentActive {
			active++
		}
		if inv.RiskLevel == models.RiskHigh {
			highRisk++
		}
		if !Compatible(appetite, inv.RiskLevel) {
			misaligned++
		}
	}

	var insights []Insight
	if float64(highRisk)/float64(len(investments)) > highRiskConcentration {
		insights = append(insights, Insight{
			Type:     TypeRisk,
			Title:    "High Risk Concentration",
			Content:  "Your portfolio has significant exposure to high-risk investments. Consider adding some stable, low-risk options for balance.",
			Action:   "Add low-risk products",
			Priority: PriorityHigh,
		})
	}
	if total.LessThan(money.New(growingPortfolioBelow)) {
		insights = append(insights, Insight{
			Type:     TypePortfolio,
			Title:    "Growing Your Portfolio",
			Content:  "Great start! Consider regular monthly investments to build wealth systematically over time.",
			Priority: PriorityMedium,
		})
	}

	alignment := fmt.Sprintf("Your %s risk approach aligns well with your investment choices.", appetite)
	if misaligned > 0 {
		alignment = fmt.Sprintf("%d of your investments fall outside your %s risk appetite.", misaligned, appetite)
	}
	insights = append(insights, Insight{
		Type:  TypePerformance,
		Title: "Portfolio Status",
		Content: fmt.Sprintf("You have %d investments (%d active) totaling %s. %s",
			len(investments), active, total.Format(), alignment),
		Priority: PriorityLow,
	})
	return insights
}
