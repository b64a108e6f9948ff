package models

// BudgetInput holds the monthly cost estimates entered in the budget calculator.
type BudgetInput struct {
	Rent      float64 `json:"rent"`
	Food      float64 `json:"food"`
	Transport float64 `json:"transport"`
	Utilities float64 `json:"utilities"`
	Leisure   float64 `json:"leisure"`
	Other     float64 `json:"other"`
	Income    float64 `json:"income"` // grant, scholarship or part-time income per month
	Months    int     `json:"months"`
}

// BudgetSummary is the calculator output.
type BudgetSummary struct {
	MonthlyTotal   float64
	Total          float64
	MonthlyBalance float64
	Months         int
	Breakdown      map[string]float64
}
