package services

import (
	"time"

	portsrepo "github.com/aqsaty/installment_app/internal/core/ports/repositories"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the given repository. All
// mutating services share one lock manager so edits, payments and admin
// corrections on the same contract serialize against each other.
func NewServiceContainer(repo portsrepo.ContractRepositoryFacade, lockTimeout time.Duration) *portssvc.ServiceContainer {
	locks := newContractLocks(lockTimeout)
	return &portssvc.ServiceContainer{
		Contract: NewContractService(repo),
		Schedule: NewScheduleService(repo, locks),
		Payment:  NewPaymentService(repo, locks),
		Admin:    NewAdminService(repo, locks),
	}
}
