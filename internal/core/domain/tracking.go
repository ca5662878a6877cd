package domain

import "time"

// TrackingAction is the action recorded for one step of a voucher.
type TrackingAction string

const (
	ActionApproved TrackingAction = "APPROVED"
	ActionRejected TrackingAction = "REJECTED"
)

// TrackingRecord is one immutable entry in the append-only tracking ledger:
// who acted on which step of which voucher, when and why. Records are never
// updated or deleted; a mistaken action is resolved by a later, separately
// recorded action.
type TrackingRecord struct {
	TrackingID string         `json:"trackingID"` // Primary Key (UUID)
	VoucherID  string         `json:"voucherID"`  // FK -> vouchers.voucher_id
	Step       int            `json:"step"`       // 1-based
	RoleLabel  string         `json:"roleLabel"`  // Role in effect at the time of action
	ActorID    *string        `json:"actorID"`    // Nullable only for placeholder records
	Action     TrackingAction `json:"action"`
	Remarks    string         `json:"remarks"`
	ActedAt    time.Time      `json:"actedAt"`
}
