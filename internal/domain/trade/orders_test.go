package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesOrder_Lifecycle(t *testing.T) {
	o, err := NewSalesOrder("SO-2026-001", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(900))
	require.NoError(t, err)
	assert.Equal(t, OrderStatusDraft, o.Status)

	assert.Error(t, o.Complete())

	require.NoError(t, o.Confirm())
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	assert.Error(t, o.Confirm())

	require.NoError(t, o.Complete())
	assert.Equal(t, OrderStatusCompleted, o.Status)
	assert.Error(t, o.Cancel())
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	o, err := NewPurchaseOrder("PO-2026-001", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(450))
	require.NoError(t, err)

	require.NoError(t, o.Confirm())
	require.NoError(t, o.Cancel())
	assert.Equal(t, OrderStatusCancelled, o.Status)
	assert.Error(t, o.Cancel())
}

func TestNewSalesOrder_Validation(t *testing.T) {
	_, err := NewSalesOrder("", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(10))
	assert.Error(t, err)

	_, err = NewSalesOrder("SO-1", uuid.Nil, uuid.New(), time.Now(), decimal.NewFromInt(10))
	assert.Error(t, err)

	_, err = NewSalesOrder("SO-1", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(-10))
	assert.Error(t, err)
}

func TestQuote_Lifecycle(t *testing.T) {
	q, err := NewQuote("Q-2026-001", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusDraft, q.Status)

	assert.Error(t, q.Accept())

	require.NoError(t, q.Send())
	require.NoError(t, q.Accept())
	assert.Equal(t, QuoteStatusAccepted, q.Status)
	assert.Error(t, q.Reject())
}
