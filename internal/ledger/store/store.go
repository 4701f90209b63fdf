// Package store is the SQL adapter to the accounting engine's operation
// tables. The engine itself (balances, merging, multi-bank views) lives in
// another service; this module only registers operations into the shared
// schema, idempotently by transaction reference.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalyzotov/gpb-module/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RegisterHoldOperation(ctx context.Context, account string, date time.Time, opType ledger.OperationType, amount ledger.Money, description string) error {
	query := `
		INSERT INTO hold_operations (id, account_number, date, type, amount, currency, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(),
		account,
		date,
		string(opType),
		amount.Amount,
		amount.Currency,
		description,
	)
	if err != nil {
		return fmt.Errorf("registering hold operation: %w", err)
	}

	return nil
}

func (s *Store) RegisterOperation(ctx context.Context, account string, date time.Time, ref ledger.TransactionReference, opType ledger.OperationType, amount ledger.Money, description string) (ledger.OperationID, error) {
	// The reference is unique in the schema; re-registering the same
	// operation must resolve to the existing row, never duplicate it.
	insert := `
		INSERT INTO operations (id, account_number, date, transaction_reference, type, amount, currency, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (transaction_reference) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, insert,
		uuid.NewString(),
		account,
		date,
		string(ref),
		string(opType),
		amount.Amount,
		amount.Currency,
		description,
	); err != nil {
		return "", fmt.Errorf("registering operation: %w", err)
	}

	var id string
	if err := s.db.QueryRowContext(ctx,
		`SELECT id FROM operations WHERE transaction_reference = $1`,
		string(ref),
	).Scan(&id); err != nil {
		return "", fmt.Errorf("resolving operation id: %w", err)
	}

	return ledger.OperationID(id), nil
}

func (s *Store) RemoveMatchingHoldOperations(ctx context.Context, id ledger.OperationID) error {
	// A settled operation supersedes any hold on the same account with the
	// same day, amount and description.
	query := `
		DELETE FROM hold_operations h
		USING operations o
		WHERE o.id = $1
		  AND h.account_number = o.account_number
		  AND h.date = o.date
		  AND h.amount = o.amount
		  AND h.currency = o.currency
		  AND h.description = o.description
	`

	if _, err := s.db.ExecContext(ctx, query, string(id)); err != nil {
		return fmt.Errorf("removing matching hold operations: %w", err)
	}

	return nil
}
