package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/acctflow/voucher_approval_app/internal/dto"
	"github.com/acctflow/voucher_approval_app/internal/middleware"
)

var (
	ErrVoucherUnbalanced      = fmt.Errorf("%w: debit and credit line items do not balance", apperrors.ErrValidation)
	ErrNoLineItems            = fmt.Errorf("%w: voucher must have at least one line item", apperrors.ErrValidation)
	ErrNegativeAmount         = fmt.Errorf("%w: line item amount must not be negative", apperrors.ErrValidation)
	ErrUnknownAccount         = fmt.Errorf("%w: unknown account", apperrors.ErrValidation)
	ErrUnknownPrefix          = fmt.Errorf("%w: unknown prefix code", apperrors.ErrValidation)
	ErrCheckReferenceRequired = fmt.Errorf("%w: check reference is required on the final disbursement step", apperrors.ErrValidation)
	ErrVoucherTerminal        = fmt.Errorf("%w: voucher is already in a terminal state", apperrors.ErrConflict)
	ErrStepMismatch           = fmt.Errorf("%w: voucher is no longer at the submitted step", apperrors.ErrConflict)
	ErrStepNotActionable      = fmt.Errorf("%w: actor does not satisfy the current step rule", apperrors.ErrForbidden)
)

const voucherSubjectType = "voucher"

// voucherService is the approval workflow engine: it owns voucher creation and
// the step transitions, and fans side effects (notifications, audit entries)
// out after each successful transition.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepositoryWithTx
	prefixRepo  portsrepo.PrefixRepositoryFacade
	accountDir  portssvc.AccountDirectorySvc
	userDir     portssvc.UserDirectorySvc
	notifier    portssvc.NotifierSvc
	audit       portssvc.AuditLogSvc
}

// NewVoucherService creates a new voucher workflow service.
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryWithTx,
	prefixRepo portsrepo.PrefixRepositoryFacade,
	accountDir portssvc.AccountDirectorySvc,
	userDir portssvc.UserDirectorySvc,
	notifier portssvc.NotifierSvc,
	audit portssvc.AuditLogSvc,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		prefixRepo:  prefixRepo,
		accountDir:  accountDir,
		userDir:     userDir,
		notifier:    notifier,
		audit:       audit,
	}
}

// Ensure voucherService implements the portssvc.VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// validateLineItems checks that the line items are present, non-negative and
// balanced (debit sum equals credit sum).
func (s *voucherService) validateLineItems(items []dto.CreateLineItemRequest) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero
	for _, item := range items {
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: account %s", ErrNegativeAmount, item.AccountID)
		}
		if domain.EntryType(item.EntryType) == domain.Debit {
			debitsSum = debitsSum.Add(item.Amount)
		} else {
			creditsSum = creditsSum.Add(item.Amount)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrVoucherUnbalanced, debitsSum.String(), creditsSum.String())
	}
	return nil
}

// roleLabelFor resolves the display label recorded on a tracking record for a
// step rule. The label is fixed at action time so later role changes do not
// rewrite history.
func roleLabelFor(rule domain.StepRule) string {
	if rule.Role != nil {
		return *rule.Role
	}
	if rule.User != nil {
		return "assigned user"
	}
	return domain.RoleAccountingAssistant
}

// CreateVoucher validates the request, allocates a control number and persists
// the voucher at step 2 with the step-1 tracking record written on the
// submitter's behalf. Implements portssvc.VoucherWriterSvc.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateLineItems(req.LineItems); err != nil {
		return nil, err
	}

	// Every referenced account must resolve in the account directory. Line
	// items are immutable after creation, so this is the only time the check
	// is needed.
	checked := make(map[string]struct{}, len(req.LineItems))
	for _, item := range req.LineItems {
		if _, done := checked[item.AccountID]; done {
			continue
		}
		checked[item.AccountID] = struct{}{}
		exists, err := s.accountDir.AccountExists(ctx, item.AccountID)
		if err != nil {
			logger.Error("Failed to resolve account", slog.String("account_id", item.AccountID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve account %s: %w", item.AccountID, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: ID %s", ErrUnknownAccount, item.AccountID)
		}
	}

	if _, err := s.prefixRepo.FindPrefixByCode(ctx, req.PrefixCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPrefix, req.PrefixCode)
		}
		logger.Error("Failed to resolve prefix", slog.String("prefix_code", req.PrefixCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve prefix %s: %w", req.PrefixCode, err)
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()
	voucherType := domain.VoucherType(req.Type)

	voucher := domain.Voucher{
		VoucherID:   voucherID,
		Type:        voucherType,
		Title:       req.Title,
		Description: req.Description,
		StepFlow:    domain.TemplateForType(voucherType),
		CurrentStep: 2, // Step 1 is satisfied by the act of creation
		Status:      domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	items := make([]domain.LineItem, len(req.LineItems))
	for i, itemReq := range req.LineItems {
		orderNumber := itemReq.OrderNumber
		if orderNumber == 0 {
			orderNumber = i + 1
		}
		items[i] = domain.LineItem{
			LineItemID:  uuid.NewString(),
			VoucherID:   voucherID,
			AccountID:   itemReq.AccountID,
			EntryType:   domain.EntryType(itemReq.EntryType),
			Amount:      itemReq.Amount,
			OrderNumber: orderNumber,
		}
	}

	submitterID := actor.UserID
	first := domain.TrackingRecord{
		TrackingID: uuid.NewString(),
		VoucherID:  voucherID,
		Step:       1,
		RoleLabel:  domain.RoleAccountingAssistant,
		ActorID:    &submitterID,
		Action:     domain.ActionApproved,
		ActedAt:    now,
	}

	created, err := s.voucherRepo.CreateVoucher(ctx, voucher, items, first, req.PrefixCode)
	if err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("prefix_code", req.PrefixCode))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Voucher created",
		slog.String("voucher_id", created.VoucherID),
		slog.String("control_number", created.ControlNumber))

	s.recordAudit(ctx, "voucher_created",
		fmt.Sprintf("created voucher %s", created.ControlNumber),
		actor.UserID, created.VoucherID,
		map[string]any{"type": string(created.Type), "controlNumber": created.ControlNumber})
	s.notifyNextStep(ctx, created)

	return created, nil
}

// transition runs one atomic step action against a voucher. The decide
// callback executes under the repository's row lock and must return the
// tracking record to append, or a typed error to abort. step is the step the
// caller observed when submitting; if the locked row is no longer at that
// step the action lost a race (or is a double-submit) and fails with a
// conflict instead of silently acting on whatever step is current.
func (s *voucherService) transition(ctx context.Context, voucherID string, actor domain.Actor, step int, decide func(v *domain.Voucher, rule domain.StepRule) (*domain.TrackingRecord, error)) (*domain.Voucher, error) {
	return s.voucherRepo.TransitionVoucher(ctx, voucherID, func(v *domain.Voucher) (*domain.TrackingRecord, error) {
		if v.IsTerminal() {
			return nil, fmt.Errorf("%w: status is %s", ErrVoucherTerminal, v.Status)
		}
		if v.CurrentStep != step {
			return nil, fmt.Errorf("%w: submitted step %d, voucher is at step %d", ErrStepMismatch, step, v.CurrentStep)
		}
		rule, ok := v.RuleAt(v.CurrentStep)
		if !ok {
			return nil, fmt.Errorf("%w: no actionable step", apperrors.ErrConflict)
		}
		if !actor.Satisfies(rule) {
			return nil, fmt.Errorf("%w: step %d", ErrStepNotActionable, v.CurrentStep)
		}
		return decide(v, rule)
	})
}

// ApproveVoucher resolves the voucher's current step with an approval. On the
// last step the voucher becomes APPROVED and the step counter is left one past
// the flow, marking every step satisfied. Implements portssvc.VoucherWriterSvc.
func (s *voucherService) ApproveVoucher(ctx context.Context, voucherID string, req dto.ApproveVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var actedStep int
	voucher, err := s.transition(ctx, voucherID, actor, req.Step, func(v *domain.Voucher, rule domain.StepRule) (*domain.TrackingRecord, error) {
		if v.RequiresCheckReference() {
			if req.CheckReference == nil || *req.CheckReference == "" {
				return nil, ErrCheckReferenceRequired
			}
			v.CheckID = req.CheckReference
		}

		// Captured before advancement so the audit event names the step that
		// was acted on, not the one the voucher moved to.
		actedStep = v.CurrentStep

		now := time.Now().UTC()
		actorID := actor.UserID
		rec := domain.TrackingRecord{
			TrackingID: uuid.NewString(),
			VoucherID:  v.VoucherID,
			Step:       actedStep,
			RoleLabel:  roleLabelFor(rule),
			ActorID:    &actorID,
			Action:     domain.ActionApproved,
			Remarks:    req.Remarks,
			ActedAt:    now,
		}

		if next := v.CurrentStep + 1; next > len(v.StepFlow) {
			v.Status = domain.StatusApproved
			v.CurrentStep = len(v.StepFlow) + 1
		} else {
			v.CurrentStep = next
		}
		v.LastUpdatedAt = now
		v.LastUpdatedBy = actor.UserID
		return &rec, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Voucher step approved",
		slog.String("voucher_id", voucher.VoucherID),
		slog.Int("current_step", voucher.CurrentStep),
		slog.String("status", string(voucher.Status)))

	s.recordAudit(ctx, "journal_approved",
		fmt.Sprintf("approved voucher %s", voucher.ControlNumber),
		actor.UserID, voucher.VoucherID,
		map[string]any{"step": actedStep, "status": string(voucher.Status)})

	if voucher.Status == domain.StatusApproved {
		s.notifyParticipants(ctx, voucher)
	} else {
		s.notifyNextStep(ctx, voucher)
	}

	return voucher, nil
}

// DeclineVoucher resolves the voucher's current step with a rejection. The
// voucher becomes REJECTED and the step counter stays at the step where the
// rejection happened. Implements portssvc.VoucherWriterSvc.
func (s *voucherService) DeclineVoucher(ctx context.Context, voucherID string, req dto.DeclineVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.transition(ctx, voucherID, actor, req.Step, func(v *domain.Voucher, rule domain.StepRule) (*domain.TrackingRecord, error) {
		now := time.Now().UTC()
		actorID := actor.UserID
		rec := domain.TrackingRecord{
			TrackingID: uuid.NewString(),
			VoucherID:  v.VoucherID,
			Step:       v.CurrentStep,
			RoleLabel:  roleLabelFor(rule),
			ActorID:    &actorID,
			Action:     domain.ActionRejected,
			Remarks:    req.Remarks,
			ActedAt:    now,
		}

		v.Status = domain.StatusRejected
		v.LastUpdatedAt = now
		v.LastUpdatedBy = actor.UserID
		return &rec, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Voucher declined",
		slog.String("voucher_id", voucher.VoucherID),
		slog.Int("declined_at_step", voucher.CurrentStep))

	s.recordAudit(ctx, "journal_declined",
		fmt.Sprintf("declined voucher %s", voucher.ControlNumber),
		actor.UserID, voucher.VoucherID,
		map[string]any{"step": voucher.CurrentStep})
	s.notifySubmitter(ctx, voucher, req.Remarks)

	return voucher, nil
}

// GetVoucherByID retrieves a voucher with its annotated step flow, line items
// and tracking history. Implements portssvc.VoucherReaderSvc.
func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*dto.VoucherDetailResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find voucher by ID", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}

	items, err := s.voucherRepo.FindLineItemsByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch line items", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to retrieve line items for voucher %s: %w", voucherID, err)
	}

	tracking, err := s.voucherRepo.FindTrackingByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch tracking records", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to retrieve tracking for voucher %s: %w", voucherID, err)
	}

	resp := &dto.VoucherDetailResponse{
		VoucherResponse: dto.ToVoucherResponse(voucher),
		StepFlow:        s.annotateStepFlow(ctx, voucher.StepFlow),
		LineItems:       dto.ToLineItemResponses(items),
		Tracking:        dto.ToTrackingRecordResponses(tracking),
	}
	return resp, nil
}

// annotateStepFlow resolves pinned-user display names at read time. A lookup
// failure degrades to unannotated rules rather than failing the read.
func (s *voucherService) annotateStepFlow(ctx context.Context, flow []domain.StepRule) []dto.StepRuleResponse {
	logger := middleware.GetLoggerFromCtx(ctx)

	pinned := make([]string, 0)
	for _, rule := range flow {
		if rule.User != nil {
			pinned = append(pinned, *rule.User)
		}
	}

	var names map[string]string
	if len(pinned) > 0 {
		var err error
		names, err = s.userDir.FindUserNamesByIDs(ctx, pinned)
		if err != nil {
			logger.Warn("Failed to resolve pinned user names", slog.String("error", err.Error()))
		}
	}

	out := make([]dto.StepRuleResponse, len(flow))
	for i, rule := range flow {
		out[i] = dto.StepRuleResponse{Step: i + 1, Role: rule.Role, UserID: rule.User}
		if rule.User != nil {
			if name, ok := names[*rule.User]; ok {
				out[i].UserName = &name
			}
		}
	}
	return out
}

// ListVouchers retrieves a paginated list of vouchers.
// Implements portssvc.VoucherReaderSvc.
func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, params.PrefixCode, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve vouchers: %w", err)
	}

	responses := make([]dto.VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		responses[i] = dto.ToVoucherResponse(&v)
	}
	return &dto.ListVouchersResponse{Vouchers: responses, NextToken: nextToken}, nil
}

// recordAudit appends an audit event. Failures are logged and swallowed: a
// side effect must never convert a committed transition into an error.
func (s *voucherService) recordAudit(ctx context.Context, eventType, description, actorID, voucherID string, properties map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.audit.Record(ctx, eventType, description, actorID, voucherSubjectType, voucherID, properties); err != nil {
		logger.Error("Failed to record audit event",
			slog.String("event_type", eventType),
			slog.String("voucher_id", voucherID),
			slog.String("error", err.Error()))
	}
}

// notifyNextStep notifies every holder of the role gating the voucher's
// current (next pending) step, or the pinned user when the step names one.
func (s *voucherService) notifyNextStep(ctx context.Context, v *domain.Voucher) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rule, ok := v.RuleAt(v.CurrentStep)
	if !ok {
		return
	}

	var recipients []string
	if rule.User != nil {
		recipients = []string{*rule.User}
	} else if rule.Role != nil {
		ids, err := s.userDir.FindUserIDsByRole(ctx, *rule.Role)
		if err != nil {
			logger.Warn("Failed to resolve notification recipients", slog.String("role", *rule.Role), slog.String("error", err.Error()))
			return
		}
		recipients = ids
	}
	if len(recipients) == 0 {
		return
	}

	title := fmt.Sprintf("Voucher %s awaits your approval", v.ControlNumber)
	message := fmt.Sprintf("%s is at step %d of %d.", v.Title, v.CurrentStep, len(v.StepFlow))
	if err := s.notifier.Notify(ctx, recipients, title, message, voucherLink(v)); err != nil {
		logger.Warn("Failed to dispatch step notification", slog.String("voucher_id", v.VoucherID), slog.String("error", err.Error()))
	}
}

// notifyParticipants notifies every distinct actor that appears in the
// voucher's tracking history that the voucher is fully approved.
func (s *voucherService) notifyParticipants(ctx context.Context, v *domain.Voucher) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tracking, err := s.voucherRepo.FindTrackingByVoucherID(ctx, v.VoucherID)
	if err != nil {
		logger.Warn("Failed to load tracking for final notification", slog.String("voucher_id", v.VoucherID), slog.String("error", err.Error()))
		return
	}

	seen := make(map[string]struct{})
	recipients := make([]string, 0, len(tracking))
	for _, rec := range tracking {
		if rec.ActorID == nil {
			continue
		}
		if _, dup := seen[*rec.ActorID]; dup {
			continue
		}
		seen[*rec.ActorID] = struct{}{}
		recipients = append(recipients, *rec.ActorID)
	}
	if len(recipients) == 0 {
		return
	}

	title := fmt.Sprintf("Voucher %s fully approved", v.ControlNumber)
	message := fmt.Sprintf("%s has completed all %d approval steps.", v.Title, len(v.StepFlow))
	if err := s.notifier.Notify(ctx, recipients, title, message, voucherLink(v)); err != nil {
		logger.Warn("Failed to dispatch approval notification", slog.String("voucher_id", v.VoucherID), slog.String("error", err.Error()))
	}
}

// notifySubmitter notifies the original submitter (the step-1 actor) that the
// voucher was declined, including the rejection reason.
func (s *voucherService) notifySubmitter(ctx context.Context, v *domain.Voucher, reason string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tracking, err := s.voucherRepo.FindTrackingByVoucherID(ctx, v.VoucherID)
	if err != nil {
		logger.Warn("Failed to load tracking for decline notification", slog.String("voucher_id", v.VoucherID), slog.String("error", err.Error()))
		return
	}

	for _, rec := range tracking {
		if rec.Step != 1 || rec.ActorID == nil {
			continue
		}
		title := fmt.Sprintf("Voucher %s was declined", v.ControlNumber)
		message := fmt.Sprintf("%s was declined at step %d: %s", v.Title, v.CurrentStep, reason)
		if err := s.notifier.Notify(ctx, []string{*rec.ActorID}, title, message, voucherLink(v)); err != nil {
			logger.Warn("Failed to dispatch decline notification", slog.String("voucher_id", v.VoucherID), slog.String("error", err.Error()))
		}
		return
	}
}

func voucherLink(v *domain.Voucher) string {
	return "/vouchers/" + v.VoucherID
}
