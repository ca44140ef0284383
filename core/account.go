package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	Date     string          `json:"date,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant,omitempty"`
	Type     string          `json:"type,omitempty"`
}

type Account struct {
	Bank         string          `json:"bank,omitempty"`
	AccountID    string          `json:"accountId"`
	Label        string          `json:"label,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions,omitempty"`
	LastUpdate   time.Time       `json:"lastUpdate,omitempty"`
}

// AccountStore is the read-only account directory loaded once at startup.
type AccountStore interface {
	// List returns every account registered for phone at bank.
	// Unknown phone or bank yields an empty slice, never an error.
	List(ctx context.Context, bank, phone string) []*Account
	// Find returns the account with accountID for phone at bank, or nil.
	Find(ctx context.Context, bank, phone, accountID string) *Account
	// Banks returns the names of all banks in the directory.
	Banks(ctx context.Context) []string
	// TotalUsers returns the number of distinct phone numbers across all banks.
	TotalUsers(ctx context.Context) int
}
