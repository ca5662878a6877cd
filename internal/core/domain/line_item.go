package domain

import "github.com/shopspring/decimal"

// EntryType indicates whether a line item is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// LineItem is a single debit or credit line within a voucher. Line items are
// owned by their voucher, created once and never mutated afterwards.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"` // Primary Key (UUID)
	VoucherID   string          `json:"voucherID"`  // FK -> vouchers.voucher_id
	AccountID   string          `json:"accountID"`  // FK -> accounts.account_id
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`      // Non-negative
	OrderNumber int             `json:"orderNumber"` // Display ordering only
}
