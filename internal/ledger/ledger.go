// Package ledger defines the boundary to the external accounting engine.
// The engine owns balances and operation storage; this module only
// registers operations against it.
package ledger

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the direction of a money movement.
type OperationType string

const (
	TypeWithdraw OperationType = "withdraw"
	TypeDeposit  OperationType = "deposit"
)

// Money is an absolute amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// TransactionReference is the idempotency key of a settled operation.
// Registering the same reference twice must not create a duplicate entry.
type TransactionReference string

// OperationID identifies a registered operation inside the ledger.
type OperationID string

//go:generate mockgen -source=ledger.go -destination=service_mock.go -package=ledger
type Service interface {
	// RegisterHoldOperation records a provisional authorization. Holds carry
	// no deterministic identity and are reconciled away once the matching
	// settled operation arrives.
	RegisterHoldOperation(ctx context.Context, account string, date time.Time, opType OperationType, amount Money, description string) error

	// RegisterOperation records a settled operation. It is idempotent by
	// reference: a repeated call with the same reference is a no-op.
	RegisterOperation(ctx context.Context, account string, date time.Time, ref TransactionReference, opType OperationType, amount Money, description string) (OperationID, error)

	// RemoveMatchingHoldOperations purges holds superseded by the given
	// settled operation.
	RemoveMatchingHoldOperations(ctx context.Context, id OperationID) error
}

// refTimeLayout matches the statement's second precision; the reference must
// be stable across runs, so the layout is fixed here and nowhere else.
const refTimeLayout = "2006-01-02T15:04:05"

// NewTransactionReference derives the deterministic identity of a settled
// operation from its content. The signed amount goes in before taking the
// absolute value, so a deposit and a withdrawal of the same magnitude never
// collide.
func NewTransactionReference(ts time.Time, accountNumber string, signedAmount decimal.Decimal, description string) TransactionReference {
	source := ts.Format(refTimeLayout) + "_" + accountNumber + "_" + signedAmount.String() + "_" + description
	sum := md5.Sum([]byte(source))

	return TransactionReference(hex.EncodeToString(sum[:]))
}
