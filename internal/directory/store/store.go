package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitalyzotov/gpb-module/internal/directory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanAccount reads an account row from the scanner.
// Expected column order: number, name, bank, currency
func scanAccount(s scanner) (*directory.Account, error) {
	var acc directory.Account

	var bankStr string

	var currency sql.NullString

	if err := s.Scan(&acc.Number, &acc.Name, &bankStr, &currency); err != nil {
		return nil, err
	}

	acc.Bank = directory.Bank(bankStr)
	acc.Currency = currency.String

	return &acc, nil
}

const selectAccountColumns = `a.number, a.name, a.bank, a.currency`

func (s *Store) Find(ctx context.Context, number string) (*directory.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.number = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directory.ErrNotFound
		}

		return nil, fmt.Errorf("finding account: %w", err)
	}

	return acc, nil
}

func (s *Store) FindAccountOfCard(ctx context.Context, cardNumber string, date time.Time) (*directory.Account, error) {
	// A card can be re-linked to another account over time; the link row
	// that covers the operation date wins.
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		JOIN card_accounts ca ON ca.account_number = a.number
		WHERE ca.card_number = $1
		  AND ca.valid_from <= $2
		  AND (ca.valid_to IS NULL OR ca.valid_to >= $2)
		ORDER BY ca.valid_from DESC
		LIMIT 1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, cardNumber, date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, directory.ErrNotFound
		}

		return nil, fmt.Errorf("finding account of card: %w", err)
	}

	return acc, nil
}

func (s *Store) FindByMask(ctx context.Context, mask string, issuer directory.Bank) ([]directory.Card, error) {
	// Statement masks hide the middle digits ("4276 55** **** 1234" or
	// "427655******1234"); match on the visible prefix and suffix.
	query := `SELECT c.number, c.bank
		FROM cards c
		WHERE c.bank = $1
		  AND c.number LIKE REPLACE(REPLACE($2, ' ', ''), '*', '%')
		ORDER BY c.number`

	rows, err := s.db.QueryContext(ctx, query, string(issuer), mask)
	if err != nil {
		return nil, fmt.Errorf("finding cards by mask: %w", err)
	}
	defer rows.Close()

	var cards []directory.Card

	for rows.Next() {
		var card directory.Card

		var bankStr string

		if err := rows.Scan(&card.Number, &bankStr); err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}

		card.Issuer = directory.Bank(bankStr)
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}

	return cards, nil
}
