package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by sqlmock with the postgres dialect
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newTestPayment(t *testing.T) *finance.Payment {
	t.Helper()
	payment, err := finance.NewPayment(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100),
		uuid.New(), uuid.New(),
		finance.PaymentDirectionInbound,
		finance.CounterpartyRef{},
		finance.DocumentRef{},
		finance.BankAccountRef(uuid.New()),
		"", "",
		uuid.New(),
	)
	require.NoError(t, err)
	return payment
}

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds existing payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		paymentID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "amount", "direction", "recorded_by_user_id"}).
			AddRow(paymentID, decimal.NewFromInt(100), "INBOUND", uuid.New())

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(rows)

		payment, err := repo.FindByID(context.Background(), paymentID)

		require.NoError(t, err)
		assert.Equal(t, paymentID, payment.ID)
		assert.Equal(t, finance.PaymentDirectionInbound, payment.Direction)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		paymentID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		payment, err := repo.FindByID(context.Background(), paymentID)

		assert.Nil(t, payment)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_MarkReversed(t *testing.T) {
	t.Run("tombstones a live payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		payment := newTestPayment(t)
		require.NoError(t, payment.MarkReversed(uuid.New(), time.Now().UTC()))

		mock.ExpectExec(`UPDATE "payments" SET .* WHERE id = \$\d+ AND reversed_at IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkReversed(context.Background(), payment)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when the row is already tombstoned", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		payment := newTestPayment(t)
		require.NoError(t, payment.MarkReversed(uuid.New(), time.Now().UTC()))

		mock.ExpectExec(`UPDATE "payments" SET .* WHERE id = \$\d+ AND reversed_at IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE id = \$1`).
			WithArgs(payment.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.MarkReversed(context.Background(), payment)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_REVERSED", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when the row does not exist", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		payment := newTestPayment(t)
		require.NoError(t, payment.MarkReversed(uuid.New(), time.Now().UTC()))

		mock.ExpectExec(`UPDATE "payments" SET .* WHERE id = \$\d+ AND reversed_at IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE id = \$1`).
			WithArgs(payment.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.MarkReversed(context.Background(), payment)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindAll(t *testing.T) {
	t.Run("excludes reversed payments by default", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		rows := sqlmock.NewRows([]string{"id", "direction"}).
			AddRow(uuid.New(), "INBOUND")

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE reversed_at IS NULL ORDER BY date DESC.*`).
			WillReturnRows(rows)

		payments, err := repo.FindAll(context.Background(), finance.PaymentFilter{})

		require.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters by direction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		direction := finance.PaymentDirectionOutbound
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE reversed_at IS NULL AND direction = \$1 ORDER BY date DESC.*`).
			WithArgs(string(direction)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindAll(context.Background(), finance.PaymentFilter{Direction: &direction})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
