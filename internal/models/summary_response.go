package models

// ExpenseSummary is the statistics tuple shared by all summary views
type ExpenseSummary struct {
	Total   float64  `json:"total"`
	Count   int      `json:"count"`
	Average float64  `json:"average"`
	Min     *float64 `json:"min"` // nil when no expenses matched
	Max     *float64 `json:"max"`
}

// CategoryExpenseSummary is a statistics tuple for one category
type CategoryExpenseSummary struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ExpenseSummary
}

// TimePeriodExpenseSummary is a statistics tuple for one calendar period
type TimePeriodExpenseSummary struct {
	Period string `json:"period"` // "YYYY-MM"
	ExpenseSummary
}
