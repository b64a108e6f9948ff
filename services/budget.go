package services

import "exchange-catalog/models"

// CalculateBudget totals the monthly costs over the stay. Negative amounts
// count as zero and a stay shorter than one month counts as one month.
func CalculateBudget(in models.BudgetInput) models.BudgetSummary {
	rent, food, transport := nonNegative(in.Rent), nonNegative(in.Food), nonNegative(in.Transport)
	utilities, leisure, other := nonNegative(in.Utilities), nonNegative(in.Leisure), nonNegative(in.Other)

	// Fixed summation order keeps the float total stable.
	monthly := rent + food + transport + utilities + leisure + other
	breakdown := map[string]float64{
		"rent":      rent,
		"food":      food,
		"transport": transport,
		"utilities": utilities,
		"leisure":   leisure,
		"other":     other,
	}

	months := in.Months
	if months < 1 {
		months = 1
	}

	return models.BudgetSummary{
		MonthlyTotal:   round2(monthly),
		Total:          round2(monthly * float64(months)),
		MonthlyBalance: round2(nonNegative(in.Income) - monthly),
		Months:         months,
		Breakdown:      breakdown,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
