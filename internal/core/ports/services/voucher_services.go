package services

import (
	"context"

	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	"github.com/acctflow/voucher_approval_app/internal/dto"
)

// VoucherReaderSvc defines read operations for voucher data
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher snapshot with its annotated step flow,
	// line items and full tracking history.
	GetVoucherByID(ctx context.Context, voucherID string) (*dto.VoucherDetailResponse, error)

	// ListVouchers retrieves a paginated list of vouchers.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines the workflow transitions of the engine.
type VoucherWriterSvc interface {
	// CreateVoucher validates and persists a new voucher at step 2 in PENDING
	// status, with the step-1 tracking record written on the submitter's behalf.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error)

	// ApproveVoucher resolves the voucher's current step with an approval,
	// advancing the step or reaching the APPROVED terminal state.
	ApproveVoucher(ctx context.Context, voucherID string, req dto.ApproveVoucherRequest, actor domain.Actor) (*domain.Voucher, error)

	// DeclineVoucher resolves the voucher's current step with a rejection,
	// moving the voucher to the REJECTED terminal state.
	DeclineVoucher(ctx context.Context, voucherID string, req dto.DeclineVoucherRequest, actor domain.Actor) (*domain.Voucher, error)
}

// VoucherSvcFacade combines all voucher workflow service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}

// PrefixReaderSvc defines read operations for control-number prefixes.
type PrefixReaderSvc interface {
	ListPrefixes(ctx context.Context) ([]dto.PrefixResponse, error)
}

// PrefixWriterSvc defines write operations for control-number prefixes.
type PrefixWriterSvc interface {
	CreatePrefix(ctx context.Context, req dto.CreatePrefixRequest, actor domain.Actor) (*domain.Prefix, error)
}

// PrefixSvcFacade combines prefix service interfaces
type PrefixSvcFacade interface {
	PrefixReaderSvc
	PrefixWriterSvc
}

// ServiceContainer holds the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Voucher VoucherSvcFacade
	Prefix  PrefixSvcFacade
}
