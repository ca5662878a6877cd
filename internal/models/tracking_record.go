package models

import "time"

// TrackingRecord is the persisted shape of one tracking ledger row. Rows are
// insert-only; no update or delete statement exists for this table.
type TrackingRecord struct {
	TrackingID string    `json:"trackingID"` // Primary Key (UUID)
	VoucherID  string    `json:"voucherID"`  // FK -> vouchers.voucher_id
	Step       int       `json:"step"`
	RoleLabel  string    `json:"roleLabel"`
	ActorID    *string   `json:"actorID"` // Nullable FK -> users.user_id
	Action     string    `json:"action"`  // APPROVED or REJECTED
	Remarks    string    `json:"remarks"`
	ActedAt    time.Time `json:"actedAt"`
}
