package domain

// Prefix is a control-number prefix (e.g. "DV" for disbursement vouchers)
// with its running sequence. NextSequence is only read and advanced under a
// row lock inside the voucher-creation transaction.
type Prefix struct {
	Code         string `json:"code"` // Primary Key
	Label        string `json:"label"`
	NextSequence int64  `json:"nextSequence"`
	AuditFields
}
