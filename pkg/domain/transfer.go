package domain

// ScheduledTransfer is a standing order between two wallets.
type ScheduledTransfer struct {
	ID            string  `json:"id"`
	FromWalletID  string  `json:"fromWalletId"`
	ToWalletID    string  `json:"toWalletId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	ScheduledDate string  `json:"scheduledDate"`
	Frequency     string  `json:"frequency"` // once, weekly, monthly, yearly
	IsActive      bool    `json:"isActive"`
	Description   string  `json:"description"`
}
