package domain

// Transaction kinds as reported by the API.
const (
	TxIncome   = "income"
	TxExpense  = "expense"
	TxTransfer = "transfer"
)

// Transaction is a single ledger entry in the recent-transactions feed.
type Transaction struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // ISO 8601, rendered via internal/format
	WalletID    string  `json:"walletId"`
}
