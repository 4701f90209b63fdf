package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitalyzotov/gpb-module/internal/directory"
	"github.com/vitalyzotov/gpb-module/internal/statement"
)

var (
	// ErrCardNotFound means the statement references a card mask that
	// matches none of the bank's cards.
	ErrCardNotFound = errors.New("card not found by mask")
	// ErrCardAmbiguous means more than one card matches the mask. The
	// pipeline must not guess which one owns the operation.
	ErrCardAmbiguous = errors.New("multiple cards match mask")
	// ErrAccountNotFound means no usable account owns the operation.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCurrencyMismatch means the account has a fixed currency that
	// differs from the operation's currency.
	ErrCurrencyMismatch = errors.New("account currency mismatch")
)

// resolver maps statement operations to concrete ledger accounts. Lookups
// are cached for the lifetime of one resolver, keyed by the raw identifying
// string as it appeared in the statement; the engine creates a fresh
// resolver per statement, so nothing survives a batch.
type resolver struct {
	accounts directory.AccountRepository
	cards    directory.CardRepository
	bank     directory.Bank

	cardCache    map[string]directory.Card
	accountCache map[string]*directory.Account
}

func newResolver(accounts directory.AccountRepository, cards directory.CardRepository, bank directory.Bank) *resolver {
	return &resolver{
		accounts:     accounts,
		cards:        cards,
		bank:         bank,
		cardCache:    make(map[string]directory.Card),
		accountCache: make(map[string]*directory.Account),
	}
}

// resolve produces the account owning the operation, or a definitive
// failure. Card-scoped operations resolve via mask lookup; account-scoped
// ones directly by number.
func (r *resolver) resolve(ctx context.Context, op statement.Operation) (*directory.Account, error) {
	if op.CardNumber != "" {
		return r.resolveByCard(ctx, op)
	}

	return r.resolveByNumber(ctx, op)
}

func (r *resolver) resolveByCard(ctx context.Context, op statement.Operation) (*directory.Account, error) {
	card, ok := r.cardCache[op.CardNumber]
	if !ok {
		matches, err := r.cards.FindByMask(ctx, op.CardNumber, r.bank)
		if err != nil {
			return nil, fmt.Errorf("look up cards by mask %q: %w", op.CardNumber, err)
		}

		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("mask %q: %w", op.CardNumber, ErrCardNotFound)
		case 1:
			card = matches[0]
			r.cardCache[op.CardNumber] = card
		default:
			return nil, fmt.Errorf("mask %q: %w", op.CardNumber, ErrCardAmbiguous)
		}
	}

	account, err := r.accounts.FindAccountOfCard(ctx, card.Number, op.Timestamp)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("card %q on %s: %w", card.Number, op.Timestamp.Format("2006-01-02"), ErrAccountNotFound)
		}

		return nil, fmt.Errorf("look up account of card %q: %w", card.Number, err)
	}

	return account, nil
}

func (r *resolver) resolveByNumber(ctx context.Context, op statement.Operation) (*directory.Account, error) {
	if account, ok := r.accountCache[op.AccountNumber]; ok {
		return account, nil
	}

	account, err := r.accounts.Find(ctx, op.AccountNumber)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("number %q: %w", op.AccountNumber, ErrAccountNotFound)
		}

		return nil, fmt.Errorf("look up account %q: %w", op.AccountNumber, err)
	}

	if account.Bank != r.bank {
		return nil, fmt.Errorf("number %q belongs to another bank: %w", op.AccountNumber, ErrAccountNotFound)
	}

	if account.Currency != "" && account.Currency != op.Currency {
		return nil, fmt.Errorf("account %q is %s, operation is %s: %w",
			op.AccountNumber, account.Currency, op.Currency, ErrCurrencyMismatch)
	}

	r.accountCache[op.AccountNumber] = account

	return account, nil
}
