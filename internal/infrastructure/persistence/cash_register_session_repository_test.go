package persistence

import (
	"context"
	"testing"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&finance.CashRegister{}, &finance.CashRegisterSession{}, &finance.CashRegisterTransaction{})
	require.NoError(t, err)

	return db
}

func seedRegister(t *testing.T, db *gorm.DB) *finance.CashRegister {
	t.Helper()
	register, err := finance.NewCashRegister("Front desk", uuid.New())
	require.NoError(t, err)
	require.NoError(t, NewGormCashRegisterRepository(db).Save(context.Background(), register))
	return register
}

func TestGormCashRegisterSessionRepository_FindOpenByRegister(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewGormCashRegisterSessionRepository(db)
	ctx := context.Background()
	register := seedRegister(t, db)

	t.Run("reports no open session on a fresh register", func(t *testing.T) {
		_, err := repo.FindOpenByRegister(ctx, register.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	session, err := finance.OpenCashRegisterSession(register.ID, uuid.New(), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, session))

	t.Run("finds the open session with its register", func(t *testing.T) {
		found, err := repo.FindOpenByRegister(ctx, register.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, found.ID)
		require.NotNil(t, found.Register)
		assert.Equal(t, register.Name, found.Register.Name)
	})

	t.Run("closed sessions are no longer open", func(t *testing.T) {
		require.NoError(t, session.Close(uuid.New(), decimal.NewFromInt(100), ""))
		require.NoError(t, repo.Save(ctx, session))

		_, err := repo.FindOpenByRegister(ctx, register.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormCashRegisterSessionRepository_FindByRegister(t *testing.T) {
	db := setupSessionTestDB(t)
	repo := NewGormCashRegisterSessionRepository(db)
	ctx := context.Background()
	register := seedRegister(t, db)

	first, err := finance.OpenCashRegisterSession(register.ID, uuid.New(), decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, first.Close(uuid.New(), decimal.NewFromInt(50), ""))
	require.NoError(t, repo.Save(ctx, first))

	second, err := finance.OpenCashRegisterSession(register.ID, uuid.New(), decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	sessions, err := repo.FindByRegister(ctx, register.ID, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// Sessions of other registers stay invisible
	other := seedRegister2(t, db, "Back office")
	sessions, err = repo.FindByRegister(ctx, other.ID, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func seedRegister2(t *testing.T, db *gorm.DB, name string) *finance.CashRegister {
	t.Helper()
	register, err := finance.NewCashRegister(name, uuid.New())
	require.NoError(t, err)
	require.NoError(t, NewGormCashRegisterRepository(db).Save(context.Background(), register))
	return register
}

func TestGormCashRegisterTransactionRepository_Append(t *testing.T) {
	db := setupSessionTestDB(t)
	sessionRepo := NewGormCashRegisterSessionRepository(db)
	txRepo := NewGormCashRegisterTransactionRepository(db)
	ctx := context.Background()
	register := seedRegister(t, db)

	session, err := finance.OpenCashRegisterSession(register.ID, uuid.New(), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, sessionRepo.Save(ctx, session))

	paymentID := uuid.New()
	entry, err := finance.NewCashRegisterTransaction(
		session.ID, register.ID, &paymentID,
		finance.CashTransactionKindPaymentIn,
		decimal.NewFromInt(40), decimal.NewFromInt(140),
		"Inbound payment",
	)
	require.NoError(t, err)
	require.NoError(t, txRepo.Append(ctx, entry))

	entries, err := txRepo.FindBySession(ctx, session.ID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, finance.CashTransactionKindPaymentIn, entries[0].Kind)
	assert.True(t, decimal.NewFromInt(140).Equal(entries[0].BalanceAfter))
	require.NotNil(t, entries[0].PaymentID)
	assert.Equal(t, paymentID, *entries[0].PaymentID)
}
