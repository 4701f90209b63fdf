// Package reconcile drives the statement import pipeline: it pulls
// unprocessed statement files from the store, resolves every operation to
// a ledger account and registers the result with the accounting engine.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitalyzotov/gpb-module/internal/directory"
	"github.com/vitalyzotov/gpb-module/internal/ledger"
	"github.com/vitalyzotov/gpb-module/internal/statement"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reconcile
type StatementRepository interface {
	FindUnprocessed() ([]statement.ID, error)
	Find(id statement.ID) (*statement.Statement, error)
	MarkProcessed(id statement.ID) error
}

type Service struct {
	statements StatementRepository
	ledger     ledger.Service
	accounts   directory.AccountRepository
	cards      directory.CardRepository
	skip       map[string]struct{}
}

// NewService builds the engine. skipAccounts lists account numbers whose
// operations are intentionally never imported.
func NewService(
	statements StatementRepository,
	ledgerSvc ledger.Service,
	accounts directory.AccountRepository,
	cards directory.CardRepository,
	skipAccounts []string,
) *Service {
	skip := make(map[string]struct{}, len(skipAccounts))
	for _, number := range skipAccounts {
		skip[number] = struct{}{}
	}

	return &Service{
		statements: statements,
		ledger:     ledgerSvc,
		accounts:   accounts,
		cards:      cards,
		skip:       skip,
	}
}

// ProcessStatement loads one statement and registers its operations in file
// order. Any resolution or ledger failure aborts the whole statement: a
// single unresolvable row indicates inconsistent directory data, not a bad
// row worth skipping. The statement is marked processed only after every
// row went through, so a failed statement stays eligible for retry.
func (s *Service) ProcessStatement(ctx context.Context, id statement.ID) error {
	st, err := s.statements.Find(id)
	if err != nil {
		return fmt.Errorf("load statement %q: %w", id.Name, err)
	}

	res := newResolver(s.accounts, s.cards, directory.Gazprombank)

	for i, op := range st.Operations {
		if err := s.processOperation(ctx, res, op); err != nil {
			return fmt.Errorf("statement %q row %d: %w", id.Name, i+1, err)
		}
	}

	if err := s.statements.MarkProcessed(id); err != nil {
		return fmt.Errorf("mark statement %q processed: %w", id.Name, err)
	}

	return nil
}

func (s *Service) processOperation(ctx context.Context, res *resolver, op statement.Operation) error {
	// Direction comes from the raw signed amount; the ledger receives the
	// absolute value separately.
	opType := ledger.TypeDeposit
	if op.Amount.IsNegative() {
		opType = ledger.TypeWithdraw
	}

	if s.skipped(op.AccountNumber) {
		slog.Warn("skipping operation for ignored account",
			"account", op.AccountNumber, "amount", op.Amount, "currency", op.Currency)
		return nil
	}

	account, err := res.resolve(ctx, op)
	if err != nil {
		return err
	}

	if s.skipped(account.Number) {
		slog.Warn("skipping operation for ignored account",
			"account", account.Number, "amount", op.Amount, "currency", op.Currency)
		return nil
	}

	amount := ledger.Money{Amount: op.Amount.Abs(), Currency: op.Currency}
	// The ledger works in calendar days; time-of-day stays inside the
	// transaction reference only.
	day := truncateToDay(op.Timestamp)

	if op.Hold {
		if err := s.ledger.RegisterHoldOperation(ctx, account.Number, day, opType, amount, op.Description); err != nil {
			return fmt.Errorf("register hold operation: %w", err)
		}

		return nil
	}

	ref := ledger.NewTransactionReference(op.Timestamp, account.Number, op.Amount, op.Description)

	operationID, err := s.ledger.RegisterOperation(ctx, account.Number, day, ref, opType, amount, op.Description)
	if err != nil {
		return fmt.Errorf("register operation %s: %w", ref, err)
	}

	if err := s.ledger.RemoveMatchingHoldOperations(ctx, operationID); err != nil {
		return fmt.Errorf("remove matching holds for %s: %w", operationID, err)
	}

	return nil
}

// ProcessNewStatements scans all unprocessed statements in sorted-name
// order and processes each independently. A failure on one statement is
// logged and does not halt the batch; the failed file simply stays
// unprocessed for the next pass.
func (s *Service) ProcessNewStatements(ctx context.Context) error {
	ids, err := s.statements.FindUnprocessed()
	if err != nil {
		return fmt.Errorf("scan unprocessed statements: %w", err)
	}

	slog.Info("found unprocessed statements", "count", len(ids))

	for _, id := range ids {
		slog.Info("processing statement", "name", id.Name)

		if err := s.ProcessStatement(ctx, id); err != nil {
			slog.Error("statement processing failed", "name", id.Name, "error", err)
			continue
		}

		slog.Info("statement processed", "name", id.Name)
	}

	return nil
}

func (s *Service) skipped(accountNumber string) bool {
	if accountNumber == "" {
		return false
	}

	_, ok := s.skip[accountNumber]

	return ok
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
