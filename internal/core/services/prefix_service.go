package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/acctflow/voucher_approval_app/internal/apperrors"
	"github.com/acctflow/voucher_approval_app/internal/core/domain"
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
	"github.com/acctflow/voucher_approval_app/internal/dto"
	"github.com/acctflow/voucher_approval_app/internal/middleware"
)

// prefixService manages control-number prefixes.
type prefixService struct {
	prefixRepo portsrepo.PrefixRepositoryFacade
}

// NewPrefixService creates a new prefix service.
func NewPrefixService(prefixRepo portsrepo.PrefixRepositoryFacade) portssvc.PrefixSvcFacade {
	return &prefixService{prefixRepo: prefixRepo}
}

var _ portssvc.PrefixSvcFacade = (*prefixService)(nil)

// ListPrefixes returns all registered prefixes.
func (s *prefixService) ListPrefixes(ctx context.Context) ([]dto.PrefixResponse, error) {
	prefixes, err := s.prefixRepo.ListPrefixes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prefixes: %w", err)
	}
	return dto.ToPrefixResponses(prefixes), nil
}

// CreatePrefix registers a new control-number prefix. Only administrators may
// do this.
func (s *prefixService) CreatePrefix(ctx context.Context, req dto.CreatePrefixRequest, actor domain.Actor) (*domain.Prefix, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators may register prefixes", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	prefix := domain.Prefix{
		Code:  strings.ToUpper(req.Code),
		Label: req.Label,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.prefixRepo.SavePrefix(ctx, prefix); err != nil {
		logger.Error("Failed to save prefix", slog.String("code", prefix.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save prefix: %w", err)
	}

	logger.Info("Prefix registered", slog.String("code", prefix.Code))
	return &prefix, nil
}
