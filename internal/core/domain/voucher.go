package domain

// VoucherType determines the step flow a voucher is created with and whether
// a check reference is required on the final step.
type VoucherType string

const (
	Disbursement VoucherType = "DISBURSEMENT"
	Journal      VoucherType = "JOURNAL"
)

// VoucherStatus indicates the workflow state of a voucher.
// PENDING is the only non-terminal status; APPROVED and REJECTED are terminal.
type VoucherStatus string

const (
	StatusPending  VoucherStatus = "PENDING"
	StatusApproved VoucherStatus = "APPROVED"
	StatusRejected VoucherStatus = "REJECTED"
)

// StepRule gates a single approval step. If User is set, only that user (or
// an administrator) may act, regardless of Role. If only Role is set, any
// holder of that role may act. A rule with neither is the implicit step-1
// slot, which is satisfied by the act of creation and never actionable on its
// own.
type StepRule struct {
	Role *string `json:"role,omitempty"`
	User *string `json:"user,omitempty"`
}

// Voucher represents a disbursement or journal entry moving through the
// approval workflow. ControlNumber, Type, LineItems and StepFlow are fixed at
// creation; only CurrentStep, Status and CheckID change afterwards.
type Voucher struct {
	VoucherID     string        `json:"voucherID"`     // Primary Key (UUID)
	ControlNumber string        `json:"controlNumber"` // Unique, {PREFIX}-{%06d}
	Type          VoucherType   `json:"type"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StepFlow      []StepRule    `json:"stepFlow"`    // Snapshot of the template at creation
	CurrentStep   int           `json:"currentStep"` // 1-based; len(StepFlow)+1 once fully approved
	Status        VoucherStatus `json:"status"`
	CheckID       *string       `json:"checkID,omitempty"` // Final disbursement step only
	LineItems     []LineItem    `json:"lineItems,omitempty"`
	AuditFields
}

// IsTerminal reports whether the voucher can accept no further actions.
func (v *Voucher) IsTerminal() bool {
	return v.Status == StatusApproved || v.Status == StatusRejected
}

// RuleAt returns the step rule for a 1-based step index.
func (v *Voucher) RuleAt(step int) (StepRule, bool) {
	if step < 1 || step > len(v.StepFlow) {
		return StepRule{}, false
	}
	return v.StepFlow[step-1], true
}

// OnFinalStep reports whether the current step is the last step of the flow.
func (v *Voucher) OnFinalStep() bool {
	return v.CurrentStep == len(v.StepFlow)
}

// RequiresCheckReference reports whether an approval of the current step must
// carry a check reference. Only the final step of a disbursement does.
func (v *Voucher) RequiresCheckReference() bool {
	return v.Type == Disbursement && v.OnFinalStep()
}

// CurrentStepLabel returns the display label for the voucher's position in
// the workflow: the role gating the current step while pending, or the
// terminal status once the voucher is approved or rejected.
func (v *Voucher) CurrentStepLabel() string {
	switch v.Status {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	}
	rule, ok := v.RuleAt(v.CurrentStep)
	if !ok {
		return "approved"
	}
	if rule.Role != nil {
		return *rule.Role
	}
	if rule.User != nil {
		return "assigned user"
	}
	return "submitted"
}
