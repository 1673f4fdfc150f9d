package agent

import (
	"fmt"
	"strings"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/logger"
	"codeberg.org/finpilot/server/internal/retriever"
)

const noResults = "No results found."

// assembles the system prompt: persona, caller, then one block per category in fixed order
func BuildSystemPrompt(results retriever.Results, ownerID string) string {
	var builder strings.Builder

	builder.WriteString(getPersona(ownerID))

	for _, category := range records.Categories {
		builder.WriteString(fmt.Sprintf("\n📊 %s:\n", strings.ToUpper(string(category))))

		lines := formatCategory(category, results[category], ownerID)
		if len(lines) == 0 {
			builder.WriteString(noResults + "\n")
			continue
		}

		for i, line := range lines {
			builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
		}
	}

	builder.WriteString("\nRemember to maintain a professional tone while being accessible, and always provide context for your recommendations.")

	return builder.String()
}

// renders one summary line per match, skipping foreign and malformed records
func formatCategory(category records.Category, matches []retriever.Match, ownerID string) []string {
	lines := make([]string, 0, len(matches))

	for _, match := range matches {
		if category.OwnerScoped() && match.Record.OwnerID() != ownerID {
			logger.Warn("skipping record owned by another user in prompt",
				"category", string(category),
				"record_id", match.Record.ID(category),
			)
			continue
		}

		line, err := summarize(category, match.Record)
		if err != nil {
			logger.Warn("skipping malformed record in prompt",
				"category", string(category),
				"record_id", match.Record.ID(category),
				"error", err,
			)
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

func summarize(category records.Category, rec records.Record) (string, error) {
	switch category {
	case records.CategoryTransactions:
		t, err := records.AsTransaction(rec)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Date: %s, Amount: %s %s, Merchant: %s, Category: %s",
			t.Date(), t.AmountText, t.Currency, t.MerchantName, t.Category), nil

	case records.CategoryAssets:
		a, err := records.AsAsset(rec)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Name: %s, Type: %s, Risk Rating: %s, Expected Return: %s%%, Tenure: %s",
			a.Name, a.Type, a.RiskRatingText, a.ExpectedReturnText, a.Tenure), nil

	case records.CategoryStrategies:
		s, err := records.AsStrategy(rec)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Name: %s, Risk Profile: %s, Time Horizon: %s, Target Return: %s%%, Allocation: %s",
			s.Name, s.RiskProfile, s.TimeHorizon, s.TargetReturnText, s.AllocationJSON), nil

	default:
		return "", fmt.Errorf("%w: %s", records.ErrUnknownCategory, category)
	}
}

// returns the advisor persona and response guidelines
func getPersona(ownerID string) string {
	return `You are an expert financial advisor and investment strategist with deep knowledge of markets, portfolio management, and personal finance.
Your responses should be professional, data-driven, and tailored to the user's specific situation.

Current User ID: ` + ownerID + `

Expertise Guidelines:
1. Provide personalized investment advice based on the user's current portfolio and risk profile
2. Explain complex financial concepts in clear, accessible language
3. Consider market conditions, economic factors, and investment trends
4. Suggest specific, actionable investment strategies with clear rationale
5. Include risk management considerations in all recommendations
6. Reference relevant financial metrics and performance indicators
7. Consider tax implications and investment costs
8. Maintain a balanced perspective between short-term opportunities and long-term goals

Response Structure:
1. Start with a brief acknowledgment of the user's query
2. Provide a high-level summary of relevant findings
3. Present detailed analysis with specific data points
4. Include actionable recommendations with clear next steps
5. End with a brief conclusion or follow-up suggestion

Data Categories:
- Transactions: Include date, amount, merchant, category, and any relevant notes
- Financial Assets: Include name, type, risk rating, expected return, tenure, and performance metrics
- Investment Strategies: Include risk profile, time horizon, target returns, and allocation blueprint

Here are the relevant items from each category:
`
}
