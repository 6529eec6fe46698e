package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aqsaty/installment_app/internal/apperrors"
	"github.com/aqsaty/installment_app/internal/core/domain"
	portsrepo "github.com/aqsaty/installment_app/internal/core/ports/repositories"
)

type PgxContractRepository struct {
	pool *pgxpool.Pool
}

// NewPgxContractRepository creates a new repository for contract, installment
// and transaction data.
func NewPgxContractRepository(pool *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{pool: pool}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

// FindContractByID retrieves a contract by its ID.
func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	query := `
		SELECT contract_id, client_id, home_id, total_price, remaining_balance, payment_day, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contracts
		WHERE contract_id = $1;
	`
	var contract domain.Contract
	var totalPrice, remainingBalance int64
	err := r.pool.QueryRow(ctx, query, contractID).Scan(
		&contract.ContractID,
		&contract.ClientID,
		&contract.HomeID,
		&totalPrice,
		&remainingBalance,
		&contract.PaymentDay,
		&contract.Status,
		&contract.CreatedAt,
		&contract.CreatedBy,
		&contract.LastUpdatedAt,
		&contract.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract by ID %s: %w", contractID, err)
	}
	contract.TotalPrice = domain.NewMoney(totalPrice)
	contract.RemainingBalance = domain.NewMoney(remainingBalance)
	return &contract, nil
}

// FindScheduleByContractID retrieves the full installment set of a contract,
// ledger history included.
func (r *PgxContractRepository) FindScheduleByContractID(ctx context.Context, contractID string) (*domain.Schedule, error) {
	query := `
		SELECT installment_id, contract_id, month_number, amount, amount_paid, due_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM installments
		WHERE contract_id = $1
		ORDER BY month_number;
	`
	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for contract %s: %w", contractID, err)
	}
	defer rows.Close()

	installments := []domain.Installment{}
	for rows.Next() {
		var inst domain.Installment
		var amount, amountPaid int64
		if err := rows.Scan(
			&inst.InstallmentID,
			&inst.ContractID,
			&inst.MonthNumber,
			&amount,
			&amountPaid,
			&inst.DueDate,
			&inst.CreatedAt,
			&inst.CreatedBy,
			&inst.LastUpdatedAt,
			&inst.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row for contract %s: %w", contractID, err)
		}
		inst.Amount = domain.NewMoney(amount)
		inst.AmountPaid = domain.NewMoney(amountPaid)
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows for contract %s: %w", contractID, err)
	}
	if len(installments) == 0 {
		return nil, fmt.Errorf("schedule for contract %s: %w", contractID, apperrors.ErrNotFound)
	}

	history, err := r.findHistoryByContractID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	for i := range installments {
		installments[i].History = history[installments[i].InstallmentID]
	}

	return domain.NewSchedule(installments)
}

// findHistoryByContractID loads ledger entries for every installment of a
// contract, in append order, grouped by installment ID.
func (r *PgxContractRepository) findHistoryByContractID(ctx context.Context, contractID string) (map[string][]domain.LedgerEntry, error) {
	query := `
		SELECT h.installment_id, h.delta, h.at, h.note
		FROM installment_history h
		JOIN installments i ON i.installment_id = h.installment_id
		WHERE i.contract_id = $1
		ORDER BY h.id;
	`
	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installment history for contract %s: %w", contractID, err)
	}
	defer rows.Close()

	history := make(map[string][]domain.LedgerEntry)
	for rows.Next() {
		var installmentID string
		var delta int64
		var entry domain.LedgerEntry
		if err := rows.Scan(&installmentID, &delta, &entry.At, &entry.Note); err != nil {
			return nil, fmt.Errorf("failed to scan history row for contract %s: %w", contractID, err)
		}
		entry.Delta = domain.NewMoney(delta)
		history[installmentID] = append(history[installmentID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows for contract %s: %w", contractID, err)
	}
	return history, nil
}

// SaveContract persists a new contract and its initial installments within a
// DB transaction.
func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract, installments []domain.Installment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	contractQuery := `
		INSERT INTO contracts (contract_id, client_id, home_id, total_price, remaining_balance, payment_day, status,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, contractQuery,
		contract.ContractID,
		contract.ClientID,
		contract.HomeID,
		contract.TotalPrice.Units(),
		contract.RemainingBalance.Units(),
		contract.PaymentDay,
		contract.Status,
		contract.CreatedAt,
		contract.CreatedBy,
		contract.LastUpdatedAt,
		contract.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contract %s: %w", contract.ContractID, err)
	}

	batch := &pgx.Batch{}
	instQuery := `
		INSERT INTO installments (installment_id, contract_id, month_number, amount, amount_paid, due_date,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, inst := range installments {
		batch.Queue(instQuery,
			inst.InstallmentID,
			inst.ContractID,
			inst.MonthNumber,
			inst.Amount.Units(),
			inst.AmountPaid.Units(),
			inst.DueDate,
			inst.CreatedAt,
			inst.CreatedBy,
			inst.LastUpdatedAt,
			inst.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute installment batch for contract %s: %w", contract.ContractID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for contract %s: %w", contract.ContractID, err)
	}
	return nil
}

// SaveScheduleMutation atomically persists one schedule mutation: updated
// installments, appended ledger entries, the recomputed contract aggregate and
// the optional payment transaction. The contract row is locked for the span of
// the database transaction.
func (r *PgxContractRepository) SaveScheduleMutation(ctx context.Context, contract domain.Contract, installments []domain.Installment, newEntries map[string][]domain.LedgerEntry, txn *domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Row lock backs up the in-process contract lock for multi-instance deployments.
	var locked string
	err = tx.QueryRow(ctx, `SELECT contract_id FROM contracts WHERE contract_id = $1 FOR UPDATE;`, contract.ContractID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock contract %s: %w", contract.ContractID, err)
	}

	contractQuery := `
		UPDATE contracts
		SET remaining_balance = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE contract_id = $1;
	`
	_, err = tx.Exec(ctx, contractQuery,
		contract.ContractID,
		contract.RemainingBalance.Units(),
		contract.Status,
		contract.LastUpdatedAt,
		contract.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract %s: %w", contract.ContractID, err)
	}

	batch := &pgx.Batch{}
	instQuery := `
		UPDATE installments
		SET amount = $2, amount_paid = $3, due_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE installment_id = $1;
	`
	for _, inst := range installments {
		batch.Queue(instQuery,
			inst.InstallmentID,
			inst.Amount.Units(),
			inst.AmountPaid.Units(),
			inst.DueDate,
			inst.LastUpdatedAt,
			inst.LastUpdatedBy,
		)
	}

	// History is append-only: new entries are inserted, nothing is rewritten.
	entryQuery := `
		INSERT INTO installment_history (installment_id, delta, at, note)
		VALUES ($1, $2, $3, $4);
	`
	for installmentID, entries := range newEntries {
		for _, entry := range entries {
			batch.Queue(entryQuery,
				installmentID,
				entry.Delta.Units(),
				entry.At,
				entry.Note,
			)
		}
	}

	if txn != nil {
		txnQuery := `
			INSERT INTO transactions (transaction_id, contract_id, amount, paid_date, note,
			                          created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		batch.Queue(txnQuery,
			txn.TransactionID,
			txn.ContractID,
			txn.Amount.Units(),
			txn.PaidDate,
			txn.Note,
			txn.CreatedAt,
			txn.CreatedBy,
			txn.LastUpdatedAt,
			txn.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute mutation batch for contract %s: %w", contract.ContractID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for contract %s: %w", contract.ContractID, err)
	}
	return nil
}

// FindTransactionByID retrieves a payment transaction by its ID.
func (r *PgxContractRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, contract_id, amount, paid_date, note,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	var txn domain.Transaction
	var amount int64
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID,
		&txn.ContractID,
		&amount,
		&txn.PaidDate,
		&txn.Note,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	txn.Amount = domain.NewMoney(amount)
	return &txn, nil
}

// ListTransactionsByContractID retrieves a contract's payment transactions,
// newest first.
func (r *PgxContractRepository) ListTransactionsByContractID(ctx context.Context, contractID string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, contract_id, amount, paid_date, note,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE contract_id = $1
		ORDER BY paid_date DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for contract %s: %w", contractID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var amount int64
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.ContractID,
			&amount,
			&txn.PaidDate,
			&txn.Note,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for contract %s: %w", contractID, err)
		}
		txn.Amount = domain.NewMoney(amount)
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for contract %s: %w", contractID, err)
	}
	return transactions, nil
}

// UpdateTransactionPaidDate corrects the paid date of a past transaction.
func (r *PgxContractRepository) UpdateTransactionPaidDate(ctx context.Context, transactionID string, paidDate time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET paid_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, transactionID, paidDate, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
