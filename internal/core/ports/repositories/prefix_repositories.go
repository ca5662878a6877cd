package repositories

import (
	"context"

	"github.com/acctflow/voucher_approval_app/internal/core/domain"
)

// PrefixRepositoryFacade defines operations for control-number prefixes.
// Sequence advancement is not exposed here; it happens inside the voucher
// creation transaction under a row lock.
type PrefixRepositoryFacade interface {
	// FindPrefixByCode retrieves a prefix by its code.
	FindPrefixByCode(ctx context.Context, code string) (*domain.Prefix, error)

	// ListPrefixes retrieves all known prefixes.
	ListPrefixes(ctx context.Context) ([]domain.Prefix, error)

	// SavePrefix persists a new prefix.
	SavePrefix(ctx context.Context, prefix domain.Prefix) error
}
