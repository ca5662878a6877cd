package pgsql

import (
	"context"
	"time"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxNotificationStore persists one notification row per recipient before the
// dispatcher hands them to the delivery channel. Persist-then-deliver keeps
// delivery at-least-once without ever blocking a workflow transition.
type PgxNotificationStore struct {
	BaseRepository
}

// NewPgxNotificationStore creates a new notification store.
func NewPgxNotificationStore(pool *pgxpool.Pool) *PgxNotificationStore {
	return &PgxNotificationStore{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveNotifications inserts one row per recipient as a batch.
func (r *PgxNotificationStore) SaveNotifications(ctx context.Context, userIDs []string, title, message, link string) error {
	if len(userIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, userID := range userIDs {
		batch.Queue(`
			INSERT INTO notifications (notification_id, user_id, title, message, link, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, uuid.NewString(), userID, title, message, link, now)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert notification batch", err)
	}
	return nil
}
