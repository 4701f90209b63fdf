package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vitalyzotov/gpb-module/internal/directory"
	"github.com/vitalyzotov/gpb-module/internal/ledger"
	"github.com/vitalyzotov/gpb-module/internal/reconcile"
	"github.com/vitalyzotov/gpb-module/internal/statement"
)

const accountNumber = "40817810518370123456"

type mocks struct {
	statements *reconcile.MockStatementRepository
	ledger     *ledger.MockService
	accounts   *directory.MockAccountRepository
	cards      *directory.MockCardRepository
}

func newMocks(t *testing.T) mocks {
	t.Helper()

	ctrl := gomock.NewController(t)

	return mocks{
		statements: reconcile.NewMockStatementRepository(ctrl),
		ledger:     ledger.NewMockService(ctrl),
		accounts:   directory.NewMockAccountRepository(ctrl),
		cards:      directory.NewMockCardRepository(ctrl),
	}
}

func newService(m mocks, skip ...string) *reconcile.Service {
	return reconcile.NewService(m.statements, m.ledger, m.accounts, m.cards, skip)
}

func ts(y, m, d, hh, mm, ss int) time.Time {
	return time.Date(y, time.Month(m), d, hh, mm, ss, 0, time.UTC)
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func money(amount, currency string) ledger.Money {
	return ledger.Money{Amount: decimal.RequireFromString(amount), Currency: currency}
}

func gpbAccount() *directory.Account {
	return &directory.Account{
		Number:   accountNumber,
		Name:     "ГПБ счет",
		Bank:     directory.Gazprombank,
		Currency: "RUR",
	}
}

func reportID() statement.ID {
	return statement.ID{Name: "report_1.csv", DiscoveredAt: ts(2020, 3, 10, 0, 0, 0)}
}

func stmt(ops ...statement.Operation) *statement.Statement {
	return &statement.Statement{ID: reportID(), Operations: ops}
}

func TestService_ProcessStatement(t *testing.T) {
	m := newMocks(t)
	id := reportID()

	m.statements.EXPECT().Find(id).Return(stmt(
		statement.Operation{
			Timestamp:     ts(2020, 2, 21, 20, 0, 31),
			AccountNumber: accountNumber,
			Amount:        decimal.RequireFromString("2000"),
			Currency:      "RUR",
			Description:   "Перевод на счет",
		},
		statement.Operation{
			Timestamp:     ts(2020, 3, 9, 16, 26, 49),
			AccountNumber: accountNumber,
			Amount:        decimal.RequireFromString("-809"),
			Currency:      "RUR",
			Description:   "Перевод на счет 2",
		},
	), nil)

	// Both rows reference the same account number; the lookup is cached
	// for the batch and hits the directory once.
	m.accounts.EXPECT().
		Find(gomock.Any(), accountNumber).
		Return(gpbAccount(), nil).
		Times(1)

	opID1 := ledger.OperationID(uuid.NewString())
	opID2 := ledger.OperationID(uuid.NewString())

	gomock.InOrder(
		m.ledger.EXPECT().
			RegisterOperation(gomock.Any(), accountNumber, day(2020, 2, 21),
				ledger.TransactionReference("e468b1b44b325348d402b9e9f0b406be"),
				ledger.TypeDeposit, money("2000", "RUR"), "Перевод на счет").
			Return(opID1, nil),
		m.ledger.EXPECT().RemoveMatchingHoldOperations(gomock.Any(), opID1).Return(nil),
		m.ledger.EXPECT().
			RegisterOperation(gomock.Any(), accountNumber, day(2020, 3, 9),
				ledger.TransactionReference("2b63da9bb796bf0fa32dac51ac3907e8"),
				ledger.TypeWithdraw, money("809", "RUR"), "Перевод на счет 2").
			Return(opID2, nil),
		m.ledger.EXPECT().RemoveMatchingHoldOperations(gomock.Any(), opID2).Return(nil),
		m.statements.EXPECT().MarkProcessed(id).Return(nil),
	)

	svc := newService(m)
	require.NoError(t, svc.ProcessStatement(context.Background(), id))
}

func TestService_ProcessStatement_Hold(t *testing.T) {
	m := newMocks(t)
	id := reportID()

	m.statements.EXPECT().Find(id).Return(stmt(
		statement.Operation{
			Timestamp:     ts(2021, 5, 14, 12, 1, 2),
			AccountNumber: accountNumber,
			Amount:        decimal.RequireFromString("-1500.50"),
			Currency:      "RUR",
			Description:   "Оплата товаров и услуг",
			Hold:          true,
		},
	), nil)

	m.accounts.EXPECT().Find(gomock.Any(), accountNumber).Return(gpbAccount(), nil)

	// Holds carry no reference and are never deduplicated by the engine.
	m.ledger.EXPECT().
		RegisterHoldOperation(gomock.Any(), accountNumber, day(2021, 5, 14),
			ledger.TypeWithdraw, money("1500.50", "RUR"), "Оплата товаров и услуг").
		Return(nil)

	m.statements.EXPECT().MarkProcessed(id).Return(nil)

	svc := newService(m)
	require.NoError(t, svc.ProcessStatement(context.Background(), id))
}

func TestService_ProcessStatement_CardPath(t *testing.T) {
	m := newMocks(t)
	id := reportID()
	mask := "427655******1234"
	card := directory.Card{Number: "4276550000001234", Issuer: directory.Gazprombank}

	m.statements.EXPECT().Find(id).Return(stmt(
		statement.Operation{
			Timestamp:   ts(2021, 5, 14, 12, 1, 2),
			CardNumber:  mask,
			Amount:      decimal.RequireFromString("-100"),
			Currency:    "RUR",
			Description: "Покупка 1",
		},
		statement.Operation{
			Timestamp:   ts(2021, 5, 15, 9, 30, 0),
			CardNumber:  mask,
			Amount:      decimal.RequireFromString("-200"),
			Currency:    "RUR",
			Description: "Покупка 2",
		},
	), nil)

	// The mask resolves once per batch; both rows reuse the cached card.
	m.cards.EXPECT().
		FindByMask(gomock.Any(), mask, directory.Gazprombank).
		Return([]directory.Card{card}, nil).
		Times(1)

	// The card-to-account link is date-dependent and is looked up per row.
	m.accounts.EXPECT().
		FindAccountOfCard(gomock.Any(), card.Number, gomock.Any()).
		Return(gpbAccount(), nil).
		Times(2)

	m.ledger.EXPECT().
		RegisterOperation(gomock.Any(), accountNumber, gomock.Any(), gomock.Any(),
			ledger.TypeWithdraw, gomock.Any(), gomock.Any()).
		Return(ledger.OperationID(uuid.NewString()), nil).
		Times(2)
	m.ledger.EXPECT().RemoveMatchingHoldOperations(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	m.statements.EXPECT().MarkProcessed(id).Return(nil)

	svc := newService(m)
	require.NoError(t, svc.ProcessStatement(context.Background(), id))
}

func TestService_ProcessStatement_ResolutionFailures(t *testing.T) {
	mask := "427655******1234"

	accountOp := statement.Operation{
		Timestamp:     ts(2020, 2, 21, 20, 0, 31),
		AccountNumber: accountNumber,
		Amount:        decimal.RequireFromString("2000"),
		Currency:      "RUR",
		Description:   "Перевод на счет",
	}

	cardOp := statement.Operation{
		Timestamp:   ts(2020, 2, 21, 20, 0, 31),
		CardNumber:  mask,
		Amount:      decimal.RequireFromString("-100"),
		Currency:    "RUR",
		Description: "Покупка",
	}

	tests := []struct {
		name      string
		op        statement.Operation
		setupMock func(m mocks)
		wantErr   error
	}{
		{
			name: "CardNotFound",
			op:   cardOp,
			setupMock: func(m mocks) {
				m.cards.EXPECT().
					FindByMask(gomock.Any(), mask, directory.Gazprombank).
					Return(nil, nil)
			},
			wantErr: reconcile.ErrCardNotFound,
		},
		{
			name: "CardAmbiguous",
			op:   cardOp,
			setupMock: func(m mocks) {
				m.cards.EXPECT().
					FindByMask(gomock.Any(), mask, directory.Gazprombank).
					Return([]directory.Card{
						{Number: "4276550000001234", Issuer: directory.Gazprombank},
						{Number: "4276559999991234", Issuer: directory.Gazprombank},
					}, nil)
			},
			wantErr: reconcile.ErrCardAmbiguous,
		},
		{
			name: "CardWithoutAccountForDate",
			op:   cardOp,
			setupMock: func(m mocks) {
				m.cards.EXPECT().
					FindByMask(gomock.Any(), mask, directory.Gazprombank).
					Return([]directory.Card{{Number: "4276550000001234", Issuer: directory.Gazprombank}}, nil)
				m.accounts.EXPECT().
					FindAccountOfCard(gomock.Any(), "4276550000001234", gomock.Any()).
					Return(nil, directory.ErrNotFound)
			},
			wantErr: reconcile.ErrAccountNotFound,
		},
		{
			name: "AccountNotFound",
			op:   accountOp,
			setupMock: func(m mocks) {
				m.accounts.EXPECT().
					Find(gomock.Any(), accountNumber).
					Return(nil, directory.ErrNotFound)
			},
			wantErr: reconcile.ErrAccountNotFound,
		},
		{
			name: "AccountOfAnotherBank",
			op:   accountOp,
			setupMock: func(m mocks) {
				foreign := gpbAccount()
				foreign.Bank = directory.Bank("sberbank")
				m.accounts.EXPECT().Find(gomock.Any(), accountNumber).Return(foreign, nil)
			},
			wantErr: reconcile.ErrAccountNotFound,
		},
		{
			name: "CurrencyMismatch",
			op:   accountOp,
			setupMock: func(m mocks) {
				dollar := gpbAccount()
				dollar.Currency = "USD"
				m.accounts.EXPECT().Find(gomock.Any(), accountNumber).Return(dollar, nil)
			},
			wantErr: reconcile.ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks(t)
			id := reportID()

			m.statements.EXPECT().Find(id).Return(stmt(tt.op), nil)
			tt.setupMock(m)

			// No ledger registration and no MarkProcessed may happen: any
			// unexpected call fails the test via the controller.
			svc := newService(m)
			err := svc.ProcessStatement(context.Background(), id)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_ProcessStatement_SkipList(t *testing.T) {
	m := newMocks(t)
	id := reportID()

	m.statements.EXPECT().Find(id).Return(stmt(
		statement.Operation{
			Timestamp:     ts(2020, 2, 21, 20, 0, 31),
			AccountNumber: "40817810000000000042",
			Amount:        decimal.RequireFromString("2000"),
			Currency:      "RUR",
			Description:   "Игнорируемый счет",
		},
		statement.Operation{
			Timestamp:     ts(2020, 3, 9, 16, 26, 49),
			AccountNumber: accountNumber,
			Amount:        decimal.RequireFromString("-809"),
			Currency:      "RUR",
			Description:   "Перевод на счет 2",
		},
	), nil)

	// Only the non-skipped row reaches the directory and the ledger.
	m.accounts.EXPECT().Find(gomock.Any(), accountNumber).Return(gpbAccount(), nil)

	opID := ledger.OperationID(uuid.NewString())
	m.ledger.EXPECT().
		RegisterOperation(gomock.Any(), accountNumber, gomock.Any(), gomock.Any(),
			ledger.TypeWithdraw, money("809", "RUR"), "Перевод на счет 2").
		Return(opID, nil)
	m.ledger.EXPECT().RemoveMatchingHoldOperations(gomock.Any(), opID).Return(nil)

	m.statements.EXPECT().MarkProcessed(id).Return(nil)

	svc := newService(m, "40817810000000000042")
	require.NoError(t, svc.ProcessStatement(context.Background(), id))
}

func TestService_ProcessStatement_NotFound(t *testing.T) {
	m := newMocks(t)
	id := reportID()

	m.statements.EXPECT().Find(id).Return(nil, statement.ErrNotFound)

	svc := newService(m)
	err := svc.ProcessStatement(context.Background(), id)

	require.Error(t, err)
	assert.ErrorIs(t, err, statement.ErrNotFound)
}

func TestService_ProcessStatement_MarkProcessedFailure(t *testing.T) {
	m := newMocks(t)
	id := reportID()

	m.statements.EXPECT().Find(id).Return(stmt(), nil)
	m.statements.EXPECT().MarkProcessed(id).Return(errors.New("rename failed"))

	svc := newService(m)
	err := svc.ProcessStatement(context.Background(), id)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename failed")
}

func TestService_ProcessNewStatements_ContinuesOnFailure(t *testing.T) {
	m := newMocks(t)

	broken := statement.ID{Name: "report_1.csv"}
	healthy := statement.ID{Name: "report_2.csv"}

	m.statements.EXPECT().FindUnprocessed().Return([]statement.ID{broken, healthy}, nil)

	// First statement fails to load; the batch moves on.
	m.statements.EXPECT().Find(broken).Return(nil, statement.ErrNotFound)

	m.statements.EXPECT().Find(healthy).Return(&statement.Statement{ID: healthy}, nil)
	m.statements.EXPECT().MarkProcessed(healthy).Return(nil)

	svc := newService(m)
	require.NoError(t, svc.ProcessNewStatements(context.Background()))
}

func TestService_ProcessNewStatements_NothingToDo(t *testing.T) {
	m := newMocks(t)

	m.statements.EXPECT().FindUnprocessed().Return(nil, nil)

	svc := newService(m)
	require.NoError(t, svc.ProcessNewStatements(context.Background()))
}
