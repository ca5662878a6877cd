package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/acctflow/voucher_approval_app/internal/dto"
	"github.com/acctflow/voucher_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// prefixHandler handles HTTP requests related to control-number prefixes.
type prefixHandler struct {
	prefixService portssvc.PrefixSvcFacade
}

func newPrefixHandler(prefixService portssvc.PrefixSvcFacade) *prefixHandler {
	return &prefixHandler{prefixService: prefixService}
}

// listPrefixes godoc
// @Summary List control-number prefixes
// @Tags prefixes
// @Produce json
// @Success 200 {array} dto.PrefixResponse
// @Router /prefixes [get]
func (h *prefixHandler) listPrefixes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	prefixes, err := h.prefixService.ListPrefixes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list prefixes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prefixes"})
		return
	}

	c.JSON(http.StatusOK, prefixes)
}

// createPrefix godoc
// @Summary Register a control-number prefix
// @Tags prefixes
// @Accept json
// @Produce json
// @Param prefix body dto.CreatePrefixRequest true "Prefix to register"
// @Success 201 {object} dto.PrefixResponse
// @Failure 403 {object} map[string]string "Administrators only"
// @Failure 409 {object} map[string]string "Prefix already exists"
// @Router /prefixes [post]
func (h *prefixHandler) createPrefix(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePrefixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPrefix", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prefix, err := h.prefixService.CreatePrefix(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Prefix already exists"})
		default:
			logger.Error("Failed to create prefix", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prefix"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPrefixResponse(prefix))
}
