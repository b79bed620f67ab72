package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"yieldvault/internal/logstats"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
)

func passwordPrompt(p passwordProfile) string {
	return fmt.Sprintf(`Rate the strength of a password with these properties:
- length: %d characters
- contains uppercase letters: %t
- contains lowercase letters: %t
- contains digits: %t
- contains special characters: %t

Respond with JSON only, in the form:
{"score": <integer 0-100>, "feedback": ["..."], "suggestions": ["..."]}`,
		p.Length, p.HasUpper, p.HasLower, p.HasDigit, p.HasSpecial)
}

func descriptionPrompt(p models.Product) string {
	return fmt.Sprintf(`Write a compelling investment product description for:
Name: %s
Type: %s
Annual Yield: %.2f%%
Risk Level: %s
Tenure: %d months
Min Investment: %s

Write 2-3 professional sentences highlighting benefits and suitability. Respond with the description text only.`,
		p.Name, p.Type, p.AnnualYield, p.RiskLevel, p.TenureMonths, p.MinInvestment.Format())
}

func recommendationPrompt(appetite models.RiskLevel, catalog []models.Product, held []models.Investment) string {
	var products strings.Builder
	for _, p := range catalog {
		fmt.Fprintf(&products, "- id=%s: %s, %s, %.2f%% yield, %s risk\n",
			p.ID, p.Name, p.Type, p.AnnualYield, p.RiskLevel)
	}

	heldTypes := make([]string, 0, len(held))
	for _, inv := range held {
		heldTypes = append(heldTypes, string(inv.InvestmentType))
	}
	current := "None"
	if len(heldTypes) > 0 {
		current = strings.Join(heldTypes, ", ")
	}

	return fmt.Sprintf(`Recommend 3-5 investment products for a user with %q risk appetite.

Available Products:
%s
Current Investments: %s

Prioritize diversification and risk alignment.
Respond with a JSON array of product ids only, e.g. ["id-1", "id-2"].`,
		appetite, products.String(), current)
}

type portfolioPosition struct {
	Type   models.InvestmentType `json:"type"`
	Risk   models.RiskLevel      `json:"risk"`
	Amount money.Amount          `json:"amount"`
	Yield  float64               `json:"yield"`
	Status string                `json:"status"`
}

func portfolioPrompt(investments []models.Investment, appetite models.RiskLevel) string {
	total := money.Zero
	positions := make([]portfolioPosition, 0, len(investments))
	for _, inv := range investments {
		total = total.Add(inv.Amount)
		positions = append(positions, portfolioPosition{
			Type:   inv.InvestmentType,
			Risk:   inv.RiskLevel,
			Amount: inv.Amount,
			Yield:  inv.AnnualYield,
			Status: string(inv.Status),
		})
	}
	data, _ := json.MarshalIndent(map[string]any{
		"total_investment": total,
		"investment_count": len(investments),
		"risk_appetite":    appetite,
		"investments":      positions,
	}, "", "  ")

	return fmt.Sprintf(`Analyze this investment portfolio and provide 3-4 key insights.

Portfolio Data: %s

Respond with a JSON array only, in the form:
[{"type": "portfolio|recommendation|risk|performance", "title": "Insight Title", "content": "Detailed insight content", "action": "Optional next step", "priority": "low|medium|high"}]

Focus on risk distribution, diversification, performance potential and recommendations.`, data)
}

type failedRequest struct {
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
	Status   int    `json:"status"`
	Error    string `json:"error"`
}

func errorSummaryPrompt(failed []models.TransactionLog) string {
	rows := make([]failedRequest, 0, len(failed))
	for _, l := range failed {
		msg := "No message"
		if l.ErrorMessage != nil && *l.ErrorMessage != "" {
			msg = logstats.MessageGroup(*l.ErrorMessage)
		}
		rows = append(rows, failedRequest{
			Endpoint: l.Endpoint,
			Method:   l.HTTPMethod,
			Status:   l.StatusCode,
			Error:    msg,
		})
	}
	data, _ := json.MarshalIndent(rows, "", "  ")

	return fmt.Sprintf(`Analyze these API errors and write a short, user-friendly summary.

Error Data: %s

Explain the most common issues and what the user can do about them.
Keep it simple and actionable for non-technical users. Respond with plain text.`, data)
}
