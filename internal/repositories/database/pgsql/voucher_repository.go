package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	"github.com/acctflow/voucher_approval_app/internal/models"
	"github.com/acctflow/voucher_approval_app/internal/utils/controlnum"
	"github.com/acctflow/voucher_approval_app/internal/utils/mapping"
	"github.com/acctflow/voucher_approval_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PgxVoucherRepository struct {
	BaseRepository
}

// NewPgxVoucherRepository creates a new repository for voucher, line item and
// tracking ledger data.
func NewPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

// CreateVoucher allocates the next control number for prefixCode and persists
// the voucher, its line items and the step-1 tracking record in one DB
// transaction. The prefix row is locked FOR UPDATE for the duration, so two
// concurrent creations for the same prefix serialize on the allocation; the
// unique constraint on control_number is the backstop.
func (r *PgxVoucherRepository) CreateVoucher(ctx context.Context, voucher domain.Voucher, items []domain.LineItem, first domain.TrackingRecord, prefixCode string) (*domain.Voucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	// 1. Lock the prefix row and read its sequence
	var nextSequence int64
	err = tx.QueryRow(ctx, `
		SELECT next_sequence
		FROM voucher_prefixes
		WHERE code = $1
		FOR UPDATE;
	`, prefixCode).Scan(&nextSequence)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock prefix "+prefixCode, err)
	}

	sequence := controlnum.Next(nextSequence - 1) // Sequences start at 1 when the counter is fresh
	voucher.ControlNumber = controlnum.Format(prefixCode, sequence)

	// 2. Advance the prefix sequence
	_, err = tx.Exec(ctx, `
		UPDATE voucher_prefixes
		SET next_sequence = $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`, prefixCode, sequence+1, voucher.CreatedAt, voucher.CreatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to advance prefix sequence for "+prefixCode, err)
	}

	// 3. Insert the voucher with its step flow snapshot
	modelVoucher := mapping.ToModelVoucher(voucher)
	stepFlowJSON, err := json.Marshal(modelVoucher.StepFlow)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode step flow for voucher "+voucher.VoucherID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO vouchers (
			voucher_id, control_number, voucher_type, title, description,
			step_flow, current_step, status, check_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		modelVoucher.VoucherID,
		modelVoucher.ControlNumber,
		modelVoucher.Type,
		modelVoucher.Title,
		modelVoucher.Description,
		stepFlowJSON,
		modelVoucher.CurrentStep,
		modelVoucher.Status,
		modelVoucher.CheckID,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	// 4. Insert the line items as a batch
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO line_items (line_item_id, voucher_id, account_id, entry_type, amount, order_number)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		modelItem := mapping.ToModelLineItem(item)
		batch.Queue(itemQuery,
			modelItem.LineItemID,
			modelItem.VoucherID,
			modelItem.AccountID,
			modelItem.EntryType,
			modelItem.Amount,
			modelItem.OrderNumber,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line item batch for voucher "+modelVoucher.VoucherID, err)
	}

	// 5. Insert the step-1 tracking record
	if err := insertTrackingRecord(ctx, tx, mapping.ToModelTrackingRecord(first)); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &voucher, nil
}

// TransitionVoucher executes one atomic step action. The voucher row is read
// under FOR UPDATE, so of two racing calls exactly one sees the PENDING state
// and advances it; the other blocks until commit and then observes the
// advanced or terminal state inside apply.
func (r *PgxVoucherRepository) TransitionVoucher(ctx context.Context, voucherID string, apply func(v *domain.Voucher) (*domain.TrackingRecord, error)) (*domain.Voucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row := tx.QueryRow(ctx, selectVoucherQuery+" WHERE voucher_id = $1 FOR UPDATE;", voucherID)
	voucher, err := scanVoucher(row)
	if err != nil {
		return nil, err
	}

	record, err := apply(voucher)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE vouchers
		SET current_step = $2,
		    status = $3,
		    check_id = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE voucher_id = $1;
	`,
		voucher.VoucherID,
		voucher.CurrentStep,
		string(voucher.Status),
		voucher.CheckID,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update voucher "+voucherID, err)
	}

	if err := insertTrackingRecord(ctx, tx, mapping.ToModelTrackingRecord(*record)); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return voucher, nil
}

// insertTrackingRecord appends one row to the tracking ledger. This is the
// only write path to the table; there are no update or delete statements.
func insertTrackingRecord(ctx context.Context, tx pgx.Tx, rec models.TrackingRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO tracking_records (tracking_id, voucher_id, step, role_label, actor_id, action, remarks, acted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		rec.TrackingID,
		rec.VoucherID,
		rec.Step,
		rec.RoleLabel,
		rec.ActorID,
		rec.Action,
		rec.Remarks,
		rec.ActedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert tracking record for voucher "+rec.VoucherID, err)
	}
	return nil
}

const selectVoucherQuery = `
	SELECT voucher_id, control_number, voucher_type, title, description,
	       step_flow, current_step, status, check_id,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM vouchers`

// scanVoucher scans one voucher row, decoding the step flow snapshot.
func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var m models.Voucher
	var stepFlowJSON []byte

	err := row.Scan(
		&m.VoucherID,
		&m.ControlNumber,
		&m.Type,
		&m.Title,
		&m.Description,
		&stepFlowJSON,
		&m.CurrentStep,
		&m.Status,
		&m.CheckID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
	}

	if err := json.Unmarshal(stepFlowJSON, &m.StepFlow); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode step flow for voucher "+m.VoucherID, err)
	}

	voucher := mapping.ToDomainVoucher(m)
	return &voucher, nil
}

// FindVoucherByID retrieves a voucher by its ID.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	row := r.Pool.QueryRow(ctx, selectVoucherQuery+" WHERE voucher_id = $1;", voucherID)
	return scanVoucher(row)
}

// FindLineItemsByVoucherID retrieves all line items of a voucher in display order.
func (r *PgxVoucherRepository) FindLineItemsByVoucherID(ctx context.Context, voucherID string) ([]domain.LineItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_item_id, voucher_id, account_id, entry_type, amount, order_number
		FROM line_items
		WHERE voucher_id = $1
		ORDER BY order_number;
	`, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for voucher "+voucherID, err)
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(
			&item.LineItemID,
			&item.VoucherID,
			&item.AccountID,
			&item.EntryType,
			&item.Amount,
			&item.OrderNumber,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for voucher "+voucherID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for voucher "+voucherID, err)
	}

	return mapping.ToDomainLineItemSlice(items), nil
}

// FindTrackingByVoucherID retrieves the full action history of a voucher in
// step order.
func (r *PgxVoucherRepository) FindTrackingByVoucherID(ctx context.Context, voucherID string) ([]domain.TrackingRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT tracking_id, voucher_id, step, role_label, actor_id, action, remarks, acted_at
		FROM tracking_records
		WHERE voucher_id = $1
		ORDER BY step, acted_at;
	`, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tracking records for voucher "+voucherID, err)
	}
	defer rows.Close()

	records := []models.TrackingRecord{}
	for rows.Next() {
		var rec models.TrackingRecord
		if err := rows.Scan(
			&rec.TrackingID,
			&rec.VoucherID,
			&rec.Step,
			&rec.RoleLabel,
			&rec.ActorID,
			&rec.Action,
			&rec.Remarks,
			&rec.ActedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tracking row for voucher "+voucherID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tracking rows for voucher "+voucherID, err)
	}

	return mapping.ToDomainTrackingRecordSlice(records), nil
}

// ListVouchers retrieves a paginated list of vouchers using token-based
// pagination, newest first, optionally filtered by control-number prefix.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, prefixCode *string, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	filterClause := ""
	args := []interface{}{}
	if prefixCode != nil && *prefixCode != "" {
		args = append(args, *prefixCode+"-%")
		filterClause = "WHERE control_number LIKE $1"
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		cursorClause := "(created_at, voucher_id) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
		if filterClause == "" {
			filterClause = "WHERE " + cursorClause
		} else {
			filterClause += " AND " + cursorClause
		}
	}

	args = append(args, fetchLimit)
	query := selectVoucherQuery + " " + filterClause +
		" ORDER BY created_at DESC, voucher_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers", err)
	}
	defer rows.Close()

	vouchers := make([]domain.Voucher, 0, fetchLimit)
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, err
		}
		vouchers = append(vouchers, *voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}

	var nextTokenVal *string
	if len(vouchers) > limit {
		last := vouchers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.VoucherID)
		nextTokenVal = &token
		vouchers = vouchers[:limit]
	}

	return vouchers, nextTokenVal, nil
}
