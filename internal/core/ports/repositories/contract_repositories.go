package repositories

import (
	"context"
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
)

// ContractReader defines read operations for contract and installment data.
type ContractReader interface {
	// FindContractByID retrieves a contract by its unique identifier.
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)

	// FindScheduleByContractID retrieves the full installment set of a
	// contract, history included, ordered by month number.
	FindScheduleByContractID(ctx context.Context, contractID string) (*domain.Schedule, error)
}

// ContractWriter defines write operations for contract and installment data.
type ContractWriter interface {
	// SaveContract persists a new contract together with its initial
	// installment schedule in one database transaction.
	SaveContract(ctx context.Context, contract domain.Contract, installments []domain.Installment) error

	// SaveScheduleMutation atomically persists the outcome of one schedule
	// mutation: the updated installments, the recomputed contract aggregate,
	// the new ledger entries keyed by installment ID, and the payment
	// transaction when the mutation was a payment.
	SaveScheduleMutation(ctx context.Context, contract domain.Contract, installments []domain.Installment, newEntries map[string][]domain.LedgerEntry, txn *domain.Transaction) error
}

// TransactionReader defines read operations for payment transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a single payment transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByContractID retrieves a contract's payment
	// transactions, newest first.
	ListTransactionsByContractID(ctx context.Context, contractID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for payment transactions.
type TransactionWriter interface {
	// UpdateTransactionPaidDate corrects the paid date of a past transaction.
	// No installment amount is affected.
	UpdateTransactionPaidDate(ctx context.Context, transactionID string, paidDate time.Time, updatedBy string, updatedAt time.Time) error
}

// ContractRepositoryFacade combines all contract-related repository
// interfaces for clients that need access to every operation.
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
	TransactionReader
	TransactionWriter
}
