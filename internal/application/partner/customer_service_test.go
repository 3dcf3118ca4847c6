package partner

import (
	"context"
	"testing"

	"github.com/gestio/backend/internal/domain/partner"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer with contact details", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("FindByCode", ctx, "CUST-001").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Code:  "CUST-001",
			Name:  "Acme Retail",
			Email: "Billing@Acme.example",
		})
		require.NoError(t, err)
		assert.Equal(t, "CUST-001", resp.Code)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "billing@acme.example", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		existing, err := partner.NewCustomer("CUST-001", "Someone Else")
		require.NoError(t, err)
		repo.On("FindByCode", ctx, "CUST-001").Return(existing, nil)

		_, err = service.Create(ctx, CreateCustomerRequest{Code: "CUST-001", Name: "Acme Retail"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("FindByCode", ctx, "CUST-002").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateCustomerRequest{Code: "CUST-002"})
		assert.Error(t, err)
	})
}

func TestCustomerService_ArchiveRestore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	customer, err := partner.NewCustomer("CUST-001", "Acme Retail")
	require.NoError(t, err)

	repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	repo.On("Save", ctx, customer).Return(nil)

	require.NoError(t, service.Archive(ctx, customer.ID))
	assert.Equal(t, partner.CustomerStatusArchived, customer.Status)

	// Archiving twice is a domain error, not a silent no-op.
	err = service.Archive(ctx, customer.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ARCHIVED", domainErr.Code)

	require.NoError(t, service.Restore(ctx, customer.ID))
	assert.True(t, customer.IsActive())
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	a, err := partner.NewCustomer("CUST-001", "Acme Retail")
	require.NoError(t, err)
	b, err := partner.NewCustomer("CUST-002", "Beta Stores")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAll", ctx, filter).Return([]partner.Customer{*a, *b}, nil)
	repo.On("Count", ctx, filter).Return(int64(2), nil)

	page, err := service.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
