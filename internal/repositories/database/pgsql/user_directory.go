package pgsql

import (
	"context"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserDirectory resolves users and their roles for notification fan-out
// and for annotating step flows with display names.
type PgxUserDirectory struct {
	BaseRepository
}

// NewPgxUserDirectory creates a new user directory backed by the users and
// user_roles tables.
func NewPgxUserDirectory(pool *pgxpool.Pool) portssvc.UserDirectorySvc {
	return &PgxUserDirectory{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portssvc.UserDirectorySvc = (*PgxUserDirectory)(nil)

// FindUserIDsByRole returns the IDs of every user holding the given role.
func (r *PgxUserDirectory) FindUserIDsByRole(ctx context.Context, role string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT user_id
		FROM user_roles
		WHERE role_name = $1;
	`, role)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users by role "+role, err)
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user role row", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user role rows", err)
	}

	return userIDs, nil
}

// FindUserNamesByIDs returns display names keyed by user ID. Unknown IDs are
// absent from the result.
func (r *PgxUserDirectory) FindUserNamesByIDs(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT user_id, name
		FROM users
		WHERE user_id = ANY($1);
	`, userIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user names", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(userIDs))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}

	return names, nil
}
