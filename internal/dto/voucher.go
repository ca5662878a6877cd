package dto

import (
	"time"

	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest is one debit or credit line of a new voucher.
type CreateLineItemRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	EntryType   string          `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgte0"`
	OrderNumber int             `json:"orderNumber"`
}

// CreateVoucherRequest is the payload for creating a voucher.
type CreateVoucherRequest struct {
	Type        string                  `json:"type" binding:"required,oneof=DISBURSEMENT JOURNAL"`
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	PrefixCode  string                  `json:"prefixCode" binding:"required"`
	LineItems   []CreateLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// ApproveVoucherRequest is the payload for approving a step. Step echoes the
// step the caller saw when submitting; the engine fails the action with a
// conflict when the voucher has moved past it, so a double-submit or a lost
// race never advances the voucher twice. CheckReference is required only on
// the final step of a disbursement voucher.
type ApproveVoucherRequest struct {
	Step           int     `json:"step" binding:"required"`
	Remarks        string  `json:"remarks"`
	CheckReference *string `json:"checkReference,omitempty"`
}

// DeclineVoucherRequest is the payload for declining a step. Step carries the
// same echo guard as ApproveVoucherRequest; remarks are optional free text.
type DeclineVoucherRequest struct {
	Step    int    `json:"step" binding:"required"`
	Remarks string `json:"remarks"`
}

// StepRuleResponse is one step of a voucher's flow, annotated with the pinned
// user's display name when one is set. The name is resolved at read time, not
// stored on the voucher.
type StepRuleResponse struct {
	Step     int     `json:"step"`
	Role     *string `json:"role,omitempty"`
	UserID   *string `json:"userID,omitempty"`
	UserName *string `json:"userName,omitempty"`
}

// LineItemResponse defines the data returned for a voucher line item.
type LineItemResponse struct {
	AccountID   string          `json:"accountID"`
	EntryType   string          `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	OrderNumber int             `json:"orderNumber"`
}

// TrackingRecordResponse is one entry of a voucher's action history.
type TrackingRecordResponse struct {
	Step      int       `json:"step"`
	RoleLabel string    `json:"roleLabel"`
	ActorID   *string   `json:"actorID,omitempty"`
	Action    string    `json:"action"`
	Remarks   string    `json:"remarks,omitempty"`
	ActedAt   time.Time `json:"actedAt"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID     string    `json:"voucherID"`
	ControlNumber string    `json:"controlNumber"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CurrentStep   int       `json:"currentStep"`
	StepLabel     string    `json:"stepLabel"`
	Status        string    `json:"status"`
	CheckID       *string   `json:"checkID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// VoucherDetailResponse combines the voucher snapshot with its annotated step
// flow, line items and full tracking history.
type VoucherDetailResponse struct {
	VoucherResponse
	StepFlow  []StepRuleResponse       `json:"stepFlow"`
	LineItems []LineItemResponse       `json:"lineItems"`
	Tracking  []TrackingRecordResponse `json:"tracking"`
}

// ListVouchersParams holds parameters for listing vouchers.
type ListVouchersParams struct {
	PrefixCode *string
	Limit      int
	NextToken  *string
}

// ListVouchersResponse is a page of vouchers plus the token for the next page.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:     v.VoucherID,
		ControlNumber: v.ControlNumber,
		Type:          string(v.Type),
		Title:         v.Title,
		Description:   v.Description,
		CurrentStep:   v.CurrentStep,
		StepLabel:     v.CurrentStepLabel(),
		Status:        string(v.Status),
		CheckID:       v.CheckID,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
	}
}

// ToLineItemResponses converts a slice of domain.LineItem to []LineItemResponse.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = LineItemResponse{
			AccountID:   item.AccountID,
			EntryType:   string(item.EntryType),
			Amount:      item.Amount,
			OrderNumber: item.OrderNumber,
		}
	}
	return responses
}

// ToTrackingRecordResponses converts a slice of domain.TrackingRecord to DTOs.
func ToTrackingRecordResponses(records []domain.TrackingRecord) []TrackingRecordResponse {
	responses := make([]TrackingRecordResponse, len(records))
	for i, rec := range records {
		responses[i] = TrackingRecordResponse{
			Step:      rec.Step,
			RoleLabel: rec.RoleLabel,
			ActorID:   rec.ActorID,
			Action:    string(rec.Action),
			Remarks:   rec.Remarks,
			ActedAt:   rec.ActedAt,
		}
	}
	return responses
}
