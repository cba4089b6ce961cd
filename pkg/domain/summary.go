package domain

// Change describes the period-over-period movement of a summary metric.
type Change struct {
	Percentage float64 `json:"percentage"`
	Trend      string  `json:"trend"` // "up" or "down"
}

// Metric is a monetary amount with its ISO currency code and trend.
type Metric struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Change   Change  `json:"change"`
}

// FinancialSummary holds the three headline dashboard figures.
type FinancialSummary struct {
	TotalBalance Metric `json:"totalBalance"`
	TotalExpense Metric `json:"totalExpense"`
	TotalSavings Metric `json:"totalSavings"`
	LastUpdated  string `json:"lastUpdated"`
}
