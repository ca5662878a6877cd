package models

// VoucherStatus indicates the workflow state of a voucher row.
type VoucherStatus string

const (
	Pending  VoucherStatus = "PENDING"
	Approved VoucherStatus = "APPROVED"
	Rejected VoucherStatus = "REJECTED"
)

// StepRule is the fixed-shape record serialized into the vouchers.step_flow
// jsonb column. Both keys are optional; absent keys are omitted, never
// free-form.
type StepRule struct {
	Role *string `json:"role,omitempty"`
	User *string `json:"user,omitempty"`
}

// Voucher is the persisted shape of a voucher row. The step flow snapshot is
// stored on the row itself so later template edits cannot alter in-flight
// vouchers.
type Voucher struct {
	VoucherID     string        `json:"voucherID"`     // Primary Key (UUID)
	ControlNumber string        `json:"controlNumber"` // Unique
	Type          string        `json:"type"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StepFlow      []StepRule    `json:"stepFlow"` // jsonb column
	CurrentStep   int           `json:"currentStep"`
	Status        VoucherStatus `json:"status"`
	CheckID       *string       `json:"checkID,omitempty"`
	AuditFields
}
