package mapping

import (
	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	"github.com/acctflow/voucher_approval_app/internal/models"
)

// ToModelStepFlow converts a domain step flow to its persisted shape.
func ToModelStepFlow(flow []domain.StepRule) []models.StepRule {
	out := make([]models.StepRule, len(flow))
	for i, rule := range flow {
		out[i] = models.StepRule{Role: rule.Role, User: rule.User}
	}
	return out
}

// ToDomainStepFlow converts a persisted step flow back to the domain shape.
func ToDomainStepFlow(flow []models.StepRule) []domain.StepRule {
	out := make([]domain.StepRule, len(flow))
	for i, rule := range flow {
		out[i] = domain.StepRule{Role: rule.Role, User: rule.User}
	}
	return out
}

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(v domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:     v.VoucherID,
		ControlNumber: v.ControlNumber,
		Type:          string(v.Type),
		Title:         v.Title,
		Description:   v.Description,
		StepFlow:      ToModelStepFlow(v.StepFlow),
		CurrentStep:   v.CurrentStep,
		Status:        models.VoucherStatus(v.Status),
		CheckID:       v.CheckID,
		AuditFields:   ToModelAuditFields(v.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:     m.VoucherID,
		ControlNumber: m.ControlNumber,
		Type:          domain.VoucherType(m.Type),
		Title:         m.Title,
		Description:   m.Description,
		StepFlow:      ToDomainStepFlow(m.StepFlow),
		CurrentStep:   m.CurrentStep,
		Status:        domain.VoucherStatus(m.Status),
		CheckID:       m.CheckID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(item domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  item.LineItemID,
		VoucherID:   item.VoucherID,
		AccountID:   item.AccountID,
		EntryType:   string(item.EntryType),
		Amount:      item.Amount,
		OrderNumber: item.OrderNumber,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:  m.LineItemID,
		VoucherID:   m.VoucherID,
		AccountID:   m.AccountID,
		EntryType:   domain.EntryType(m.EntryType),
		Amount:      m.Amount,
		OrderNumber: m.OrderNumber,
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to domain LineItems.
func ToDomainLineItemSlice(items []models.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		out[i] = ToDomainLineItem(item)
	}
	return out
}

// ToModelTrackingRecord converts a domain TrackingRecord to a model TrackingRecord
func ToModelTrackingRecord(rec domain.TrackingRecord) models.TrackingRecord {
	return models.TrackingRecord{
		TrackingID: rec.TrackingID,
		VoucherID:  rec.VoucherID,
		Step:       rec.Step,
		RoleLabel:  rec.RoleLabel,
		ActorID:    rec.ActorID,
		Action:     string(rec.Action),
		Remarks:    rec.Remarks,
		ActedAt:    rec.ActedAt,
	}
}

// ToDomainTrackingRecord converts a model TrackingRecord to a domain TrackingRecord
func ToDomainTrackingRecord(m models.TrackingRecord) domain.TrackingRecord {
	return domain.TrackingRecord{
		TrackingID: m.TrackingID,
		VoucherID:  m.VoucherID,
		Step:       m.Step,
		RoleLabel:  m.RoleLabel,
		ActorID:    m.ActorID,
		Action:     domain.TrackingAction(m.Action),
		Remarks:    m.Remarks,
		ActedAt:    m.ActedAt,
	}
}

// ToDomainTrackingRecordSlice converts a slice of model TrackingRecords to domain.
func ToDomainTrackingRecordSlice(records []models.TrackingRecord) []domain.TrackingRecord {
	out := make([]domain.TrackingRecord, len(records))
	for i, rec := range records {
		out[i] = ToDomainTrackingRecord(rec)
	}
	return out
}

// ToModelPrefix converts a domain Prefix to a model Prefix
func ToModelPrefix(p domain.Prefix) models.Prefix {
	return models.Prefix{
		Code:         p.Code,
		Label:        p.Label,
		NextSequence: p.NextSequence,
		AuditFields:  ToModelAuditFields(p.AuditFields),
	}
}

// ToDomainPrefix converts a model Prefix to a domain Prefix
func ToDomainPrefix(m models.Prefix) domain.Prefix {
	return domain.Prefix{
		Code:         m.Code,
		Label:        m.Label,
		NextSequence: m.NextSequence,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
