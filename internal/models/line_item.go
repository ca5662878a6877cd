package models

import "github.com/shopspring/decimal"

// LineItem is the persisted shape of a voucher line item row.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"` // Primary Key (UUID)
	VoucherID   string          `json:"voucherID"`  // FK -> vouchers.voucher_id (cascade-owned)
	AccountID   string          `json:"accountID"`  // FK -> accounts.account_id
	EntryType   string          `json:"entryType"`  // DEBIT or CREDIT
	Amount      decimal.Decimal `json:"amount"`
	OrderNumber int             `json:"orderNumber"`
}
