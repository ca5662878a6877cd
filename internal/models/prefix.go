package models

// Prefix is the persisted shape of a control-number prefix row.
type Prefix struct {
	Code         string `json:"code"` // Primary Key
	Label        string `json:"label"`
	NextSequence int64  `json:"nextSequence"`
	AuditFields
}
