package domain

// WorkingCapital is the assets-vs-liabilities view of the account.
type WorkingCapital struct {
	CurrentAssets      float64 `json:"currentAssets"`
	CurrentLiabilities float64 `json:"currentLiabilities"`
	WorkingCapital     float64 `json:"workingCapital"`
	QuickRatio         float64 `json:"quickRatio"`
	CurrentRatio       float64 `json:"currentRatio"`
	Currency           string  `json:"currency"`
}
