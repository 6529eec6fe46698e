package services_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ContractRepository (based on ContractRepositoryFacade) ---
type MockContractRepository struct {
	mock.Mock
	FindContractByIDFn           func(ctx context.Context, contractID string) (*domain.Contract, error)
	FindScheduleByContractIDFn   func(ctx context.Context, contractID string) (*domain.Schedule, error)
	SaveContractFn               func(ctx context.Context, contract domain.Contract, installments []domain.Installment) error
	SaveScheduleMutationFn       func(ctx context.Context, contract domain.Contract, installments []domain.Installment, newEntries map[string][]domain.LedgerEntry, txn *domain.Transaction) error
	FindTransactionByIDFn        func(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByContractFn func(ctx context.Context, contractID string) ([]domain.Transaction, error)
	UpdateTransactionPaidDateFn  func(ctx context.Context, transactionID string, paidDate time.Time, updatedBy string, updatedAt time.Time) error
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	if m.FindContractByIDFn != nil {
		return m.FindContractByIDFn(ctx, contractID)
	}
	args := m.Called(ctx, contractID)
	var contract *domain.Contract
	if args.Get(0) != nil {
		contract = args.Get(0).(*domain.Contract)
	}
	return contract, args.Error(1)
}

func (m *MockContractRepository) FindScheduleByContractID(ctx context.Context, contractID string) (*domain.Schedule, error) {
	if m.FindScheduleByContractIDFn != nil {
		return m.FindScheduleByContractIDFn(ctx, contractID)
	}
	args := m.Called(ctx, contractID)
	var schedule *domain.Schedule
	if args.Get(0) != nil {
		schedule = args.Get(0).(*domain.Schedule)
	}
	return schedule, args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract, installments []domain.Installment) error {
	if m.SaveContractFn != nil {
		return m.SaveContractFn(ctx, contract, installments)
	}
	args := m.Called(ctx, contract, installments)
	return args.Error(0)
}

func (m *MockContractRepository) SaveScheduleMutation(ctx context.Context, contract domain.Contract, installments []domain.Installment, newEntries map[string][]domain.LedgerEntry, txn *domain.Transaction) error {
	if m.SaveScheduleMutationFn != nil {
		return m.SaveScheduleMutationFn(ctx, contract, installments, newEntries, txn)
	}
	args := m.Called(ctx, contract, installments, newEntries, txn)
	return args.Error(0)
}

func (m *MockContractRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if m.FindTransactionByIDFn != nil {
		return m.FindTransactionByIDFn(ctx, transactionID)
	}
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockContractRepository) ListTransactionsByContractID(ctx context.Context, contractID string) ([]domain.Transaction, error) {
	if m.ListTransactionsByContractFn != nil {
		return m.ListTransactionsByContractFn(ctx, contractID)
	}
	args := m.Called(ctx, contractID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockContractRepository) UpdateTransactionPaidDate(ctx context.Context, transactionID string, paidDate time.Time, updatedBy string, updatedAt time.Time) error {
	if m.UpdateTransactionPaidDateFn != nil {
		return m.UpdateTransactionPaidDateFn(ctx, transactionID, paidDate, updatedBy, updatedAt)
	}
	args := m.Called(ctx, transactionID, paidDate, updatedBy, updatedAt)
	return args.Error(0)
}

// --- shared fixtures ---

const (
	testContractID = "contract-abc"
	testUserID     = "user-1"
	testTotal      = int64(100_000_000)
)

// newTestContract returns the canonical active test contract.
func newTestContract() *domain.Contract {
	return &domain.Contract{
		ContractID: testContractID,
		ClientID:   uuid.NewString(),
		HomeID:     uuid.NewString(),
		TotalPrice: domain.NewMoney(testTotal),
		PaymentDay: 10,
		Status:     domain.ContractActive,
	}
}

// newTestSchedule returns the canonical 20M down + 3 month schedule from
// (monthNumber, amount, paid) triples with deterministic installment IDs of
// the form "inst-<month>".
func newTestSchedule(t *testing.T, rows ...[3]int64) *domain.Schedule {
	t.Helper()
	if len(rows) == 0 {
		rows = [][3]int64{
			{0, 20_000_000, 0},
			{1, 26_666_667, 0},
			{2, 26_666_667, 0},
			{3, 26_666_666, 0},
		}
	}
	installments := make([]domain.Installment, len(rows))
	for i, row := range rows {
		installments[i] = domain.Installment{
			InstallmentID: instID(int(row[0])),
			ContractID:    testContractID,
			MonthNumber:   int(row[0]),
			Amount:        domain.NewMoney(row[1]),
			AmountPaid:    domain.NewMoney(row[2]),
			DueDate:       time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC).AddDate(0, int(row[0]), 0),
		}
	}
	s, err := domain.NewSchedule(installments)
	require.NoError(t, err)
	return s
}

func instID(month int) string {
	return "inst-" + strconv.Itoa(month)
}
