package pgsql

import (
	"context"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountDirectory resolves account IDs against the accounts table. The
// engine only consults it during creation-time line item validation.
type PgxAccountDirectory struct {
	BaseRepository
}

// NewPgxAccountDirectory creates a new account directory.
func NewPgxAccountDirectory(pool *pgxpool.Pool) portssvc.AccountDirectorySvc {
	return &PgxAccountDirectory{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portssvc.AccountDirectorySvc = (*PgxAccountDirectory)(nil)

// AccountExists reports whether the account ID resolves to an active account.
func (r *PgxAccountDirectory) AccountExists(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1 AND is_active);
	`, accountID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check account "+accountID, err)
	}
	return exists, nil
}
