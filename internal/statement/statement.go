package statement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a statement file is missing from the store.
var ErrNotFound = errors.New("statement not found")

// Operation is one parsed line of a bank statement export.
type Operation struct {
	// Timestamp is the operation date-time as printed in the export,
	// local bank time with no timezone.
	Timestamp time.Time
	// AccountNumber is set when the line is account-scoped. May be masked.
	AccountNumber string
	// CardNumber is set when the line is card-scoped. Always masked.
	CardNumber string
	// Amount is signed; a negative value is an outflow.
	Amount decimal.Decimal
	// Currency is the normalized ISO alpha code.
	Currency string
	// Description is the free-text purpose of the operation. The bank
	// emits values of arbitrary length; they are preserved verbatim.
	Description string
	// Hold marks a provisional authorization rather than a settled
	// transaction. The export carries no reliable hold indicator, so the
	// parser always constructs operations with Hold=false; detection is
	// left to a future feed change.
	Hold bool
}

// ID identifies a statement file in the store. Name is the lookup key;
// DiscoveredAt is informational and records when the identity was captured.
type ID struct {
	Name         string
	DiscoveredAt time.Time
}

// Statement is an immutable parsed statement file: its identity plus the
// operations in source row order.
type Statement struct {
	ID         ID
	Operations []Operation
}
