package domain

// Wallet types as reported by the API.
const (
	WalletChecking   = "checking"
	WalletSavings    = "savings"
	WalletInvestment = "investment"
	WalletCredit     = "credit"
)

// Wallet is a single account/card shown in the wallets section.
type Wallet struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"`
	IsActive bool    `json:"isActive"`
}
