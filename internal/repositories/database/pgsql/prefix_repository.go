package pgsql

import (
	"context"
	"errors"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	"github.com/acctflow/voucher_approval_app/internal/models"
	"github.com/acctflow/voucher_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPrefixRepository struct {
	BaseRepository
}

// NewPgxPrefixRepository creates a new repository for control-number prefixes.
func NewPgxPrefixRepository(pool *pgxpool.Pool) portsrepo.PrefixRepositoryFacade {
	return &PgxPrefixRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PrefixRepositoryFacade = (*PgxPrefixRepository)(nil)

// FindPrefixByCode retrieves a prefix by its code.
func (r *PgxPrefixRepository) FindPrefixByCode(ctx context.Context, code string) (*domain.Prefix, error) {
	var m models.Prefix
	err := r.Pool.QueryRow(ctx, `
		SELECT code, label, next_sequence, created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_prefixes
		WHERE code = $1;
	`, code).Scan(
		&m.Code,
		&m.Label,
		&m.NextSequence,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find prefix "+code, err)
	}

	prefix := mapping.ToDomainPrefix(m)
	return &prefix, nil
}

// ListPrefixes retrieves all known prefixes in code order.
func (r *PgxPrefixRepository) ListPrefixes(ctx context.Context) ([]domain.Prefix, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT code, label, next_sequence, created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_prefixes
		ORDER BY code;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query prefixes", err)
	}
	defer rows.Close()

	prefixes := []domain.Prefix{}
	for rows.Next() {
		var m models.Prefix
		if err := rows.Scan(
			&m.Code,
			&m.Label,
			&m.NextSequence,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan prefix row", err)
		}
		prefixes = append(prefixes, mapping.ToDomainPrefix(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating prefix rows", err)
	}

	return prefixes, nil
}

// SavePrefix persists a new prefix with a fresh sequence counter.
func (r *PgxPrefixRepository) SavePrefix(ctx context.Context, prefix domain.Prefix) error {
	m := mapping.ToModelPrefix(prefix)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO voucher_prefixes (code, label, next_sequence, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, 1, $3, $4, $5, $6);
	`,
		m.Code,
		m.Label,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert prefix "+m.Code, err)
	}
	return nil
}
