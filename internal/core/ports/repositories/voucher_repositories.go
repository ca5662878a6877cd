package repositories

import (
	"context"

	"github.com/acctflow/voucher_approval_app/internal/core/domain"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher (with its step flow snapshot) by its unique identifier.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// FindLineItemsByVoucherID retrieves all line items of a voucher ordered by order number.
	FindLineItemsByVoucherID(ctx context.Context, voucherID string) ([]domain.LineItem, error)

	// ListVouchers retrieves a paginated list of vouchers using token-based pagination,
	// optionally filtered by control-number prefix. It returns the vouchers, a token
	// for the next page, and an error.
	ListVouchers(ctx context.Context, prefixCode *string, limit int, nextToken *string) ([]domain.Voucher, *string, error)
}

// VoucherWriter defines write operations for voucher data
type VoucherWriter interface {
	// CreateVoucher allocates the next control number for prefixCode and persists the
	// voucher, its line items and the step-1 tracking record within one transaction.
	// The returned voucher carries the allocated control number.
	CreateVoucher(ctx context.Context, voucher domain.Voucher, items []domain.LineItem, first domain.TrackingRecord, prefixCode string) (*domain.Voucher, error)

	// TransitionVoucher loads the voucher under a row-level exclusive lock, invokes
	// apply to decide and stage the step transition, then persists the mutated
	// voucher and appends the returned tracking record atomically. An error from
	// apply aborts the transaction and is returned unchanged.
	TransitionVoucher(ctx context.Context, voucherID string, apply func(v *domain.Voucher) (*domain.TrackingRecord, error)) (*domain.Voucher, error)
}

// TrackingReader defines read operations on the append-only tracking ledger.
// There is deliberately no writer interface outside the voucher transaction
// methods: tracking records are only ever written as part of a step action.
type TrackingReader interface {
	// FindTrackingByVoucherID retrieves the full ordered action history of a voucher.
	FindTrackingByVoucherID(ctx context.Context, voucherID string) ([]domain.TrackingRecord, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	TrackingReader
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
