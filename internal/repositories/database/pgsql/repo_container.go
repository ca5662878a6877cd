package pgsql

import (
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		VoucherRepo: NewPgxVoucherRepository(pool),
		PrefixRepo:  NewPgxPrefixRepository(pool),
	}
}
