package services

import (
	"context"

	"github.com/aqsaty/installment_app/internal/core/domain"
	"github.com/aqsaty/installment_app/internal/dto"
)

// ContractReaderSvc defines read operations for contract data.
type ContractReaderSvc interface {
	// GetContract retrieves a contract with its derived aggregate fields.
	GetContract(ctx context.Context, contractID string) (*domain.Contract, error)

	// ListTransactions retrieves a contract's payment transactions, newest first.
	ListTransactions(ctx context.Context, contractID string) ([]domain.Transaction, error)
}

// ContractWriterSvc defines write operations for contract data.
type ContractWriterSvc interface {
	// CreateContract creates a contract and its initial installment schedule
	// from a total price, a down payment and an equal split across N months.
	CreateContract(ctx context.Context, req dto.CreateContractRequest, creatorUserID string) (*domain.Contract, []domain.Installment, error)
}

// ContractSvcFacade combines all contract-level service interfaces.
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}
