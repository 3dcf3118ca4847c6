package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPaymentArgs() (time.Time, decimal.Decimal, uuid.UUID, uuid.UUID) {
	return time.Now(), decimal.NewFromInt(100), uuid.New(), uuid.New()
}

func createTestPayment(t *testing.T, direction PaymentDirection, account AccountRef) *Payment {
	date, amount, currencyID, methodID := validPaymentArgs()
	counterparty := CounterpartyRef{}
	if direction == PaymentDirectionInbound {
		counterparty = CustomerRef(uuid.New())
	} else {
		counterparty = SupplierRef(uuid.New())
	}
	p, err := NewPayment(date, amount, currencyID, methodID, direction,
		counterparty, DocumentRef{}, account, "REF-001", "", uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	date, amount, currencyID, methodID := validPaymentArgs()

	t.Run("creates valid inbound payment", func(t *testing.T) {
		account := BankAccountRef(uuid.New())
		p, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionInbound,
			CustomerRef(uuid.New()), DocumentRef{}, account, "REF-1", "first payment", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, PaymentDirectionInbound, p.Direction)
		assert.False(t, p.IsReversed())
		assert.Equal(t, AccountRefBankAccount, p.AccountRef().Kind())
		assert.True(t, p.DocumentRef().IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		for _, bad := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			_, err := NewPayment(date, bad, currencyID, methodID, PaymentDirectionInbound,
				CounterpartyRef{}, DocumentRef{}, BankAccountRef(uuid.New()), "", "", uuid.New())
			assert.Error(t, err)
		}
	})

	t.Run("rejects missing account reference", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionInbound,
			CounterpartyRef{}, DocumentRef{}, AccountRef{}, "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirection("SIDEWAYS"),
			CounterpartyRef{}, DocumentRef{}, BankAccountRef(uuid.New()), "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects missing recording user", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionInbound,
			CounterpartyRef{}, DocumentRef{}, BankAccountRef(uuid.New()), "", "", uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("rejects supplier on inbound payment", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionInbound,
			SupplierRef(uuid.New()), DocumentRef{}, BankAccountRef(uuid.New()), "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects customer on outbound payment", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionOutbound,
			CustomerRef(uuid.New()), DocumentRef{}, BankAccountRef(uuid.New()), "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects supplier invoice on inbound payment", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionInbound,
			CounterpartyRef{}, SupplierInvoiceRef(uuid.New()), BankAccountRef(uuid.New()), "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects sales order on outbound payment", func(t *testing.T) {
		_, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionOutbound,
			CounterpartyRef{}, SalesOrderRef(uuid.New()), BankAccountRef(uuid.New()), "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("allows payment without counterparty or document", func(t *testing.T) {
		p, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionOutbound,
			CounterpartyRef{}, DocumentRef{}, CashSessionRef(uuid.New()), "", "", uuid.New())
		require.NoError(t, err)
		assert.True(t, p.CounterpartyRef().IsZero())
		assert.Equal(t, AccountRefCashSession, p.AccountRef().Kind())
	})
}

func TestPayment_UnionRoundTrip(t *testing.T) {
	date, amount, currencyID, methodID := validPaymentArgs()
	invoiceID := uuid.New()
	customerID := uuid.New()
	sessionID := uuid.New()

	p, err := NewPayment(date, amount, currencyID, methodID, PaymentDirectionInbound,
		CustomerRef(customerID), CustomerInvoiceRef(invoiceID), CashSessionRef(sessionID),
		"", "", uuid.New())
	require.NoError(t, err)

	require.NotNil(t, p.CustomerID)
	assert.Equal(t, customerID, *p.CustomerID)
	assert.Nil(t, p.SupplierID)

	require.NotNil(t, p.CustomerInvoiceID)
	assert.Equal(t, invoiceID, *p.CustomerInvoiceID)
	assert.Nil(t, p.SupplierInvoiceID)
	assert.Nil(t, p.SalesOrderID)

	require.NotNil(t, p.CashRegisterSessionID)
	assert.Equal(t, sessionID, *p.CashRegisterSessionID)
	assert.Nil(t, p.BankAccountID)

	doc := p.DocumentRef()
	assert.Equal(t, DocumentRefCustomerInvoice, doc.Kind())
	assert.Equal(t, invoiceID, doc.ID())
	assert.True(t, doc.IsInvoice())
	assert.True(t, doc.IsCustomerSide())
}

func TestPayment_SignedAccountDelta(t *testing.T) {
	in := createTestPayment(t, PaymentDirectionInbound, BankAccountRef(uuid.New()))
	assert.True(t, in.SignedAccountDelta().Equal(decimal.NewFromInt(100)))

	out := createTestPayment(t, PaymentDirectionOutbound, BankAccountRef(uuid.New()))
	assert.True(t, out.SignedAccountDelta().Equal(decimal.NewFromInt(-100)))
}

func TestPayment_MarkReversed(t *testing.T) {
	t.Run("tombstones and annotates notes", func(t *testing.T) {
		p := createTestPayment(t, PaymentDirectionInbound, BankAccountRef(uuid.New()))
		actor := uuid.New()
		at := time.Now()

		err := p.MarkReversed(actor, at)
		require.NoError(t, err)
		assert.True(t, p.IsReversed())
		require.NotNil(t, p.ReversedByUserID)
		assert.Equal(t, actor, *p.ReversedByUserID)
		assert.Contains(t, p.Notes, actor.String())
	})

	t.Run("keeps existing notes", func(t *testing.T) {
		p := createTestPayment(t, PaymentDirectionOutbound, BankAccountRef(uuid.New()))
		p.Notes = "initial note"
		require.NoError(t, p.MarkReversed(uuid.New(), time.Now()))
		assert.Contains(t, p.Notes, "initial note")
		assert.Contains(t, p.Notes, "[reversed by ")
	})

	t.Run("rejects second reversal", func(t *testing.T) {
		p := createTestPayment(t, PaymentDirectionInbound, BankAccountRef(uuid.New()))
		require.NoError(t, p.MarkReversed(uuid.New(), time.Now()))
		err := p.MarkReversed(uuid.New(), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil actor", func(t *testing.T) {
		p := createTestPayment(t, PaymentDirectionInbound, BankAccountRef(uuid.New()))
		err := p.MarkReversed(uuid.Nil, time.Now())
		assert.Error(t, err)
	})
}

func TestValidationResult(t *testing.T) {
	t.Run("empty result is valid", func(t *testing.T) {
		var r ValidationResult
		assert.True(t, r.IsValid())
	})

	t.Run("accumulates violations", func(t *testing.T) {
		var r ValidationResult
		r.Add("currencyId", "NOT_FOUND", "Currency does not exist")
		r.Add("bankAccountId", "INACTIVE", "Bank account is inactive")
		assert.False(t, r.IsValid())
		assert.Len(t, r.Violations, 2)
		assert.Contains(t, r.Error(), "currencyId")
		assert.Contains(t, r.Error(), "bankAccountId")
	})
}
