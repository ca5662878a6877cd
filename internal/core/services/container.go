package services

import (
	portsrepo "github.com/acctflow/voucher_approval_app/internal/core/ports/repositories"
	portssvc "github.com/acctflow/voucher_approval_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized dependencies.
func NewContainer(
	repos *portsrepo.RepositoryProvider,
	accountDir portssvc.AccountDirectorySvc,
	userDir portssvc.UserDirectorySvc,
	notifier portssvc.NotifierSvc,
	audit portssvc.AuditLogSvc,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Voucher: NewVoucherService(repos.VoucherRepo, repos.PrefixRepo, accountDir, userDir, notifier, audit),
		Prefix:  NewPrefixService(repos.PrefixRepo),
	}
}
