// Package directory holds the account and card identity data consumed by
// the reconciliation pipeline.
package directory

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no directory entry.
var ErrNotFound = errors.New("directory entry not found")

// Bank identifies the issuing bank of an account or card.
type Bank string

const Gazprombank Bank = "gazprombank"

// Account is a ledger account owned by this platform's user.
type Account struct {
	// Number is the full account number as the bank reports it.
	Number string
	Name   string
	Bank   Bank
	// Currency pins the account to one currency. Empty means the account
	// has no fixed currency.
	Currency string
}

// Card is a payment card linked to an account. Statements reference cards
// by mask only, so Number here is the masked form used for matching.
type Card struct {
	Number string
	Issuer Bank
}

//go:generate mockgen -source=directory.go -destination=repository_mock.go -package=directory

type AccountRepository interface {
	// Find resolves an account by its exact number. Returns ErrNotFound
	// when no such account exists.
	Find(ctx context.Context, number string) (*Account, error)

	// FindAccountOfCard resolves the account a card was linked to on the
	// given date. Returns ErrNotFound when the card had no account then.
	FindAccountOfCard(ctx context.Context, cardNumber string, date time.Time) (*Account, error)
}

type CardRepository interface {
	// FindByMask returns every card of the issuer whose number matches the
	// mask. More than one match is possible and the caller must not guess.
	FindByMask(ctx context.Context, mask string, issuer Bank) ([]Card, error)
}
