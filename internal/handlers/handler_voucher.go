package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/acctflow/voucher_approval_app/internal/dto"
	"github.com/acctflow/voucher_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests related to the voucher workflow.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: voucherService}
}

// workflowError maps engine errors onto HTTP statuses.
func workflowError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
	default:
		logger.Error("Internal error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createVoucher godoc
// @Summary Create a voucher
// @Description Creates a voucher with its line items, allocates its control number and starts the approval workflow at step 2
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucher body dto.CreateVoucherRequest true "Voucher to create"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid request or unbalanced line items"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, actor)
	if err != nil {
		workflowError(c, logger, err, "create voucher")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// approveVoucher godoc
// @Summary Approve the voucher's current step
// @Description Resolves the current step with an approval; the final disbursement step requires a check reference
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Param approval body dto.ApproveVoucherRequest true "Approval details"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Missing check reference"
// @Failure 403 {object} map[string]string "Actor does not satisfy the step rule"
// @Failure 409 {object} map[string]string "Voucher already terminal or step already resolved"
// @Router /vouchers/{voucherID}/approve [post]
func (h *voucherHandler) approveVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	var req dto.ApproveVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for approveVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.ApproveVoucher(c.Request.Context(), voucherID, req, actor)
	if err != nil {
		workflowError(c, logger, err, "approve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// declineVoucher godoc
// @Summary Decline the voucher's current step
// @Description Resolves the current step with a rejection, moving the voucher to its REJECTED terminal state
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Param rejection body dto.DeclineVoucherRequest true "Rejection details"
// @Success 200 {object} dto.VoucherResponse
// @Failure 403 {object} map[string]string "Actor does not satisfy the step rule"
// @Failure 409 {object} map[string]string "Voucher already terminal or step already resolved"
// @Router /vouchers/{voucherID}/decline [post]
func (h *voucherHandler) declineVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	var req dto.DeclineVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for declineVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.DeclineVoucher(c.Request.Context(), voucherID, req, actor)
	if err != nil {
		workflowError(c, logger, err, "decline voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a voucher with its annotated step flow, line items and full tracking history
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherDetailResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	detail, err := h.voucherService.GetVoucherByID(c.Request.Context(), voucherID)
	if err != nil {
		workflowError(c, logger, err, "retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// listVouchers godoc
// @Summary List vouchers
// @Description Retrieves a paginated list of vouchers, newest first, optionally filtered by prefix
// @Tags vouchers
// @Produce json
// @Param prefix query string false "Control-number prefix code"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListVouchersResponse
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListVouchersParams{}
	if prefix := c.Query("prefix"); prefix != "" {
		params.PrefixCode = &prefix
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), params)
	if err != nil {
		workflowError(c, logger, err, "list vouchers")
		return
	}

	c.JSON(http.StatusOK, resp)
}
