package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/acctflow/voucher_approval_app/internal/core/services"
	"github.com/acctflow/voucher_approval_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

// Ensure MockVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*MockVoucherRepository)(nil)

// CreateVoucher mimics the real repository's control-number allocation: when
// the registered return value is a string it is stamped onto the passed
// voucher as the allocated control number and the voucher is echoed back.
func (m *MockVoucherRepository) CreateVoucher(ctx context.Context, voucher domain.Voucher, items []domain.LineItem, first domain.TrackingRecord, prefixCode string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucher, items, first, prefixCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if controlNumber, ok := args.Get(0).(string); ok {
		voucher.ControlNumber = controlNumber
		return &voucher, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

// TransitionVoucher mimics the real repository: the voucher registered via
// On("TransitionVoucher", ...) plays the role of the locked row, apply mutates
// it, and an apply error aborts the call.
func (m *MockVoucherRepository) TransitionVoucher(ctx context.Context, voucherID string, apply func(v *domain.Voucher) (*domain.TrackingRecord, error)) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	v := args.Get(0).(*domain.Voucher)
	if _, err := apply(v); err != nil {
		return nil, err
	}
	return v, args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindLineItemsByVoucherID(ctx context.Context, voucherID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockVoucherRepository) FindTrackingByVoucherID(ctx context.Context, voucherID string) ([]domain.TrackingRecord, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingRecord), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, prefixCode *string, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, prefixCode, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Voucher), returnedNextToken, args.Error(2)
}

func (m *MockVoucherRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockVoucherRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVoucherRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PrefixRepository ---
type MockPrefixRepository struct {
	mock.Mock
}

var _ portsrepo.PrefixRepositoryFacade = (*MockPrefixRepository)(nil)

func (m *MockPrefixRepository) FindPrefixByCode(ctx context.Context, code string) (*domain.Prefix, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prefix), args.Error(1)
}

func (m *MockPrefixRepository) ListPrefixes(ctx context.Context) ([]domain.Prefix, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prefix), args.Error(1)
}

func (m *MockPrefixRepository) SavePrefix(ctx context.Context, prefix domain.Prefix) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

// --- Mock collaborators ---
type MockAccountDirectory struct {
	mock.Mock
}

var _ portssvc.AccountDirectorySvc = (*MockAccountDirectory)(nil)

func (m *MockAccountDirectory) AccountExists(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

var _ portssvc.UserDirectorySvc = (*MockUserDirectory)(nil)

func (m *MockUserDirectory) FindUserIDsByRole(ctx context.Context, role string) ([]string, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserDirectory) FindUserNamesByIDs(ctx context.Context, userIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.NotifierSvc = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, userIDs []string, title, message, link string) error {
	args := m.Called(ctx, userIDs, title, message, link)
	return args.Error(0)
}

type MockAuditLog struct {
	mock.Mock
}

var _ portssvc.AuditLogSvc = (*MockAuditLog)(nil)

func (m *MockAuditLog) Record(ctx context.Context, eventType, description, actorID, subjectType, subjectID string, properties map[string]any) error {
	args := m.Called(ctx, eventType, description, actorID, subjectType, subjectID, properties)
	return args.Error(0)
}

// --- Test Suite Setup ---
type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockPrefixRepo  *MockPrefixRepository
	mockAccountDir  *MockAccountDirectory
	mockUserDir     *MockUserDirectory
	mockNotifier    *MockNotifier
	mockAudit       *MockAuditLog
	service         portssvc.VoucherSvcFacade

	cashAccountID    string
	expenseAccountID string
	submitter        domain.Actor
	head             domain.Actor
	auditorActor     domain.Actor
	svpActor         domain.Actor
	assistant        domain.Actor
	admin            domain.Actor
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockPrefixRepo = new(MockPrefixRepository)
	suite.mockAccountDir = new(MockAccountDirectory)
	suite.mockUserDir = new(MockUserDirectory)
	suite.mockNotifier = new(MockNotifier)
	suite.mockAudit = new(MockAuditLog)
	suite.service = services.NewVoucherService(
		suite.mockVoucherRepo,
		suite.mockPrefixRepo,
		suite.mockAccountDir,
		suite.mockUserDir,
		suite.mockNotifier,
		suite.mockAudit,
	)

	suite.cashAccountID = uuid.NewString()
	suite.expenseAccountID = uuid.NewString()
	suite.submitter = domain.NewActor(uuid.NewString(), domain.RoleAccountingAssistant)
	suite.head = domain.NewActor(uuid.NewString(), domain.RoleAccountingHead)
	suite.auditorActor = domain.NewActor(uuid.NewString(), domain.RoleAuditor)
	suite.svpActor = domain.NewActor(uuid.NewString(), domain.RoleSVP)
	suite.assistant = domain.NewActor(uuid.NewString(), domain.RoleAccountingAssistant)
	suite.admin = domain.NewActor(uuid.NewString(), domain.RoleAdmin)
}

// allowSideEffects stubs the audit and notification collaborators so tests
// about the transition itself do not have to care about fan-out details.
func (suite *VoucherServiceTestSuite) allowSideEffects() {
	suite.mockAudit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockUserDir.On("FindUserIDsByRole", mock.Anything, mock.Anything).Return([]string{uuid.NewString()}, nil).Maybe()
	suite.mockNotifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *VoucherServiceTestSuite) balancedCreateRequest() dto.CreateVoucherRequest {
	return dto.CreateVoucherRequest{
		Type:       string(domain.Disbursement),
		Title:      "Office supplies",
		PrefixCode: "DV",
		LineItems: []dto.CreateLineItemRequest{
			{AccountID: suite.expenseAccountID, EntryType: string(domain.Debit), Amount: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccountID, EntryType: string(domain.Credit), Amount: decimal.NewFromInt(100)},
		},
	}
}

// pendingVoucher builds a voucher parked at the given step, as the repository
// would return it from under the row lock.
func (suite *VoucherServiceTestSuite) pendingVoucher(t domain.VoucherType, step int) *domain.Voucher {
	return &domain.Voucher{
		VoucherID:     uuid.NewString(),
		ControlNumber: "DV-000042",
		Type:          t,
		Title:         "Office supplies",
		StepFlow:      domain.TemplateForType(t),
		CurrentStep:   step,
		Status:        domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			CreatedBy:     suite.submitter.UserID,
			LastUpdatedAt: time.Now().UTC(),
			LastUpdatedBy: suite.submitter.UserID,
		},
	}
}

// --- CreateVoucher ---

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()

	suite.mockAccountDir.On("AccountExists", ctx, suite.expenseAccountID).Return(true, nil).Once()
	suite.mockAccountDir.On("AccountExists", ctx, suite.cashAccountID).Return(true, nil).Once()
	suite.mockPrefixRepo.On("FindPrefixByCode", ctx, "DV").Return(&domain.Prefix{Code: "DV", Label: "Disbursement Voucher"}, nil).Once()

	var firstRecord domain.TrackingRecord
	suite.mockVoucherRepo.On("CreateVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.LineItem"), mock.AnythingOfType("domain.TrackingRecord"), "DV").
		Run(func(args mock.Arguments) {
			firstRecord = args.Get(3).(domain.TrackingRecord)
		}).
		Return("DV-000001", nil).Once()
	suite.allowSideEffects()

	created, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("DV-000001", created.ControlNumber)
	suite.Equal(domain.StatusPending, created.Status)
	suite.Equal(2, created.CurrentStep) // Step 1 is consumed by creation
	suite.Len(created.StepFlow, 5)
	suite.Equal(suite.submitter.UserID, created.CreatedBy)

	// The step-1 record is written on the submitter's behalf.
	suite.Equal(1, firstRecord.Step)
	suite.Equal(domain.ActionApproved, firstRecord.Action)
	suite.Require().NotNil(firstRecord.ActorID)
	suite.Equal(suite.submitter.UserID, *firstRecord.ActorID)

	suite.mockAccountDir.AssertExpectations(suite.T())
	suite.mockPrefixRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()
	req.LineItems[1].Amount = decimal.NewFromInt(99)

	_, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrVoucherUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NoLineItems() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()
	req.LineItems = nil

	_, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoLineItems)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NegativeAmount() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()
	req.LineItems[0].Amount = decimal.NewFromInt(-100)
	req.LineItems[1].Amount = decimal.NewFromInt(-100)

	_, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeAmount)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()

	suite.mockAccountDir.On("AccountExists", ctx, suite.expenseAccountID).Return(true, nil).Once()
	suite.mockAccountDir.On("AccountExists", ctx, suite.cashAccountID).Return(false, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.mockAccountDir.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_UnknownPrefix() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()

	suite.mockAccountDir.On("AccountExists", ctx, mock.Anything).Return(true, nil).Twice()
	suite.mockPrefixRepo.On("FindPrefixByCode", ctx, "DV").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownPrefix)
	suite.mockPrefixRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SideEffectFailuresAreSwallowed() {
	ctx := context.Background()
	req := suite.balancedCreateRequest()

	suite.mockAccountDir.On("AccountExists", ctx, mock.Anything).Return(true, nil).Twice()
	suite.mockPrefixRepo.On("FindPrefixByCode", ctx, "DV").Return(&domain.Prefix{Code: "DV"}, nil).Once()
	suite.mockVoucherRepo.On("CreateVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, "DV").
		Return("DV-000007", nil).Once()

	// Both side-effect channels fail; creation must still succeed.
	suite.mockAudit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	suite.mockUserDir.On("FindUserIDsByRole", mock.Anything, domain.RoleAccountingHead).Return(nil, assert.AnError)

	created, err := suite.service.CreateVoucher(ctx, req, suite.submitter)

	suite.Require().NoError(err)
	suite.Equal("DV-000007", created.ControlNumber)
}

// --- ApproveVoucher ---

func (suite *VoucherServiceTestSuite) TestApproveVoucher_AdvancesToNextStep() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 2)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.allowSideEffects()

	updated, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 2, Remarks: "looks good"}, suite.head)

	suite.Require().NoError(err)
	suite.Equal(3, updated.CurrentStep)
	suite.Equal(domain.StatusPending, updated.Status)
	suite.Equal(suite.head.UserID, updated.LastUpdatedBy)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_NotAuthorized() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 2)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	// An auditor may not act on the accounting-head step.
	_, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 2}, suite.auditorActor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStepNotActionable)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_AdminMayActOnAnyStep() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 3)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.allowSideEffects()

	updated, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 3}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(4, updated.CurrentStep)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_DoubleSubmitConflicts() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 2)
	// The same locked row serves both calls, as it would under the real row lock.
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Twice()
	suite.allowSideEffects()

	req := dto.ApproveVoucherRequest{Step: 2}
	updated, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, req, suite.admin)
	suite.Require().NoError(err)
	suite.Equal(3, updated.CurrentStep)

	// Replaying the same submission loses the race: even an admin, who would
	// satisfy the next step's rule too, must not advance the voucher twice.
	_, err = suite.service.ApproveVoucher(ctx, voucher.VoucherID, req, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStepMismatch)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(3, voucher.CurrentStep)
	suite.Equal(domain.StatusPending, voucher.Status)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_StepMismatchConflictsBeforeAuthorization() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 3)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	// The head's step-2 approval already went through; a retry of it must
	// surface the lost race, not an authorization failure against step 3.
	_, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 2}, suite.head)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.NotErrorIs(err, apperrors.ErrForbidden)
	suite.Equal(3, voucher.CurrentStep)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_AuditRecordsActedStep() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 2)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockUserDir.On("FindUserIDsByRole", mock.Anything, mock.Anything).Return([]string{uuid.NewString()}, nil).Maybe()
	suite.mockNotifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	// The audit event names the step that was acted on, not the step the
	// voucher advanced to.
	suite.mockAudit.On("Record", mock.Anything, "journal_approved", mock.Anything, suite.head.UserID, mock.Anything, voucher.VoucherID,
		mock.MatchedBy(func(props map[string]any) bool {
			return props["step"] == 2
		})).Return(nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 2}, suite.head)

	suite.Require().NoError(err)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_FinalJournalStepApproves() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 4)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	submitterID := suite.submitter.UserID
	headID := suite.head.UserID
	suite.mockVoucherRepo.On("FindTrackingByVoucherID", ctx, voucher.VoucherID).Return([]domain.TrackingRecord{
		{Step: 1, ActorID: &submitterID, Action: domain.ActionApproved},
		{Step: 2, ActorID: &headID, Action: domain.ActionApproved},
	}, nil).Once()
	suite.mockAudit.On("Record", mock.Anything, "journal_approved", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything, []string{submitterID, headID}, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 4}, suite.svpActor)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	// One past the flow, marking every step satisfied.
	suite.Equal(len(updated.StepFlow)+1, updated.CurrentStep)
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_FinalDisbursementStepRequiresCheckReference() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Disbursement, 5)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 5}, suite.assistant)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCheckReferenceRequired)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(domain.StatusPending, voucher.Status)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_FinalDisbursementStepRecordsCheckReference() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Disbursement, 5)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindTrackingByVoucherID", ctx, voucher.VoucherID).Return([]domain.TrackingRecord{}, nil).Once()
	suite.allowSideEffects()

	checkRef := "CHK-10001"
	updated, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 5, CheckReference: &checkRef}, suite.assistant)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.Require().NotNil(updated.CheckID)
	suite.Equal(checkRef, *updated.CheckID)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_TerminalVoucherConflicts() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 4)
	voucher.Status = domain.StatusApproved
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, voucher.VoucherID, dto.ApproveVoucherRequest{Step: 4}, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrVoucherTerminal)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_NotFound() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucherID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ApproveVoucher(ctx, voucherID, dto.ApproveVoucherRequest{Step: 2}, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeclineVoucher ---

func (suite *VoucherServiceTestSuite) TestDeclineVoucher_RejectsAndKeepsStep() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Disbursement, 3)
	submitterID := suite.submitter.UserID
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindTrackingByVoucherID", ctx, voucher.VoucherID).Return([]domain.TrackingRecord{
		{Step: 1, ActorID: &submitterID, Action: domain.ActionApproved},
	}, nil).Once()
	suite.mockAudit.On("Record", mock.Anything, "journal_declined", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything, []string{submitterID}, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := suite.service.DeclineVoucher(ctx, voucher.VoucherID, dto.DeclineVoucherRequest{Step: 3, Remarks: "wrong account"}, suite.auditorActor)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, updated.Status)
	// The step stays where the rejection happened.
	suite.Equal(3, updated.CurrentStep)
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestDeclineVoucher_NotAuthorized() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Disbursement, 3)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	_, err := suite.service.DeclineVoucher(ctx, voucher.VoucherID, dto.DeclineVoucherRequest{Step: 3, Remarks: "nope"}, suite.head)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStepNotActionable)
}

func (suite *VoucherServiceTestSuite) TestDeclineVoucher_StepMismatchConflicts() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Disbursement, 4)
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	// A decline aimed at step 3 arrives after the voucher moved to step 4.
	_, err := suite.service.DeclineVoucher(ctx, voucher.VoucherID, dto.DeclineVoucherRequest{Step: 3, Remarks: "stale"}, suite.auditorActor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStepMismatch)
	suite.Equal(domain.StatusPending, voucher.Status)
}

func (suite *VoucherServiceTestSuite) TestDeclineVoucher_TerminalVoucherConflicts() {
	ctx := context.Background()
	voucher := suite.pendingVoucher(domain.Journal, 2)
	voucher.Status = domain.StatusRejected
	suite.mockVoucherRepo.On("TransitionVoucher", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	_, err := suite.service.DeclineVoucher(ctx, voucher.VoucherID, dto.DeclineVoucherRequest{Step: 2, Remarks: "again"}, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrVoucherTerminal)
}

// --- Reads ---

func (suite *VoucherServiceTestSuite) TestGetVoucherByID_Success() {
	ctx := context.Background()
	pinnedUserID := uuid.NewString()
	voucher := suite.pendingVoucher(domain.Journal, 2)
	voucher.StepFlow[2] = domain.StepRule{User: &pinnedUserID}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindLineItemsByVoucherID", ctx, voucher.VoucherID).Return([]domain.LineItem{
		{AccountID: suite.cashAccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(100), OrderNumber: 1},
	}, nil).Once()
	suite.mockVoucherRepo.On("FindTrackingByVoucherID", ctx, voucher.VoucherID).Return([]domain.TrackingRecord{}, nil).Once()
	suite.mockUserDir.On("FindUserNamesByIDs", ctx, []string{pinnedUserID}).Return(map[string]string{pinnedUserID: "Jamie Cruz"}, nil).Once()

	detail, err := suite.service.GetVoucherByID(ctx, voucher.VoucherID)

	suite.Require().NoError(err)
	suite.Equal(voucher.VoucherID, detail.VoucherID)
	suite.Len(detail.StepFlow, 4)
	suite.Equal(2, detail.StepFlow[1].Step)
	suite.Require().NotNil(detail.StepFlow[2].UserName)
	suite.Equal("Jamie Cruz", *detail.StepFlow[2].UserName)
	suite.Len(detail.LineItems, 1)
	suite.mockUserDir.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestGetVoucherByID_NotFound() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetVoucherByID(ctx, voucherID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestListVouchers() {
	ctx := context.Background()
	prefix := "DV"
	suite.mockVoucherRepo.On("ListVouchers", ctx, &prefix, 10, (*string)(nil)).Return([]domain.Voucher{
		*suite.pendingVoucher(domain.Disbursement, 2),
		*suite.pendingVoucher(domain.Disbursement, 4),
	}, "token-2", nil).Once()

	resp, err := suite.service.ListVouchers(ctx, dto.ListVouchersParams{PrefixCode: &prefix, Limit: 10})

	suite.Require().NoError(err)
	suite.Len(resp.Vouchers, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

// --- Run Test Suite ---
func TestVoucherService(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
