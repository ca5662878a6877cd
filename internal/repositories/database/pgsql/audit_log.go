package pgsql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditLog is the append-only audit event recorder. The table has no
// update or delete path from application code; events are permanent for every
// caller, administrators included.
type PgxAuditLog struct {
	BaseRepository
}

// NewPgxAuditLog creates a new audit log recorder.
func NewPgxAuditLog(pool *pgxpool.Pool) portssvc.AuditLogSvc {
	return &PgxAuditLog{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portssvc.AuditLogSvc = (*PgxAuditLog)(nil)

// Record appends one audit event.
func (r *PgxAuditLog) Record(ctx context.Context, eventType, description, actorID, subjectType, subjectID string, properties map[string]any) error {
	propsJSON, err := json.Marshal(properties)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit properties", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO audit_logs (audit_id, event_type, description, actor_id, subject_type, subject_id, properties, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		uuid.NewString(),
		eventType,
		description,
		actorID,
		subjectType,
		subjectID,
		propsJSON,
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event "+eventType, err)
	}
	return nil
}
