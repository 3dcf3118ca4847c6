package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	financeapp "github.com/gestio/backend/internal/application/finance"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockCurrencyRepository implements finance.CurrencyRepository for testing
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*finance.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindByCode(ctx context.Context, code string) (*finance.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Currency, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, currency *finance.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func setupCurrencyRouter(repo *MockCurrencyRepository) *gin.Engine {
	engine := gin.New()
	h := NewCurrencyHandler(financeapp.NewCurrencyService(repo))
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestCurrencyHandler_Create(t *testing.T) {
	repo := new(MockCurrencyRepository)
	repo.On("FindByCode", mock.Anything, "EUR").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Currency")).Return(nil)

	engine := setupCurrencyRouter(repo)

	body, _ := json.Marshal(gin.H{
		"code":           "eur",
		"name":           "Euro",
		"symbol":         "€",
		"decimal_places": 2,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currencies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Code          string `json:"code"`
			DecimalPlaces int    `json:"decimal_places"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "EUR", resp.Data.Code)
	assert.Equal(t, 2, resp.Data.DecimalPlaces)
	repo.AssertExpectations(t)
}

func TestCurrencyHandler_Create_DuplicateCode(t *testing.T) {
	existing, err := finance.NewCurrency("EUR", "Euro", "€", 2)
	require.NoError(t, err)

	repo := new(MockCurrencyRepository)
	repo.On("FindByCode", mock.Anything, "EUR").Return(existing, nil)

	engine := setupCurrencyRouter(repo)

	body, _ := json.Marshal(gin.H{
		"code":           "EUR",
		"name":           "Euro",
		"symbol":         "€",
		"decimal_places": 2,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currencies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_ALREADY_EXISTS")
}

func TestCurrencyHandler_Create_InvalidBody(t *testing.T) {
	repo := new(MockCurrencyRepository)
	engine := setupCurrencyRouter(repo)

	// Code must be exactly three characters.
	body, _ := json.Marshal(gin.H{
		"code":           "EURO",
		"name":           "Euro",
		"decimal_places": 2,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currencies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestCurrencyHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockCurrencyRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	engine := setupCurrencyRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestCurrencyHandler_Deactivate(t *testing.T) {
	currency, err := finance.NewCurrency("USD", "US Dollar", "$", 2)
	require.NoError(t, err)

	repo := new(MockCurrencyRepository)
	repo.On("FindByID", mock.Anything, currency.ID).Return(currency, nil)
	repo.On("Save", mock.Anything, currency).Return(nil)

	engine := setupCurrencyRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/currencies/"+currency.ID.String()+"/deactivate", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, currency.IsActive)
	repo.AssertExpectations(t)
}

func TestCurrencyHandler_List(t *testing.T) {
	eur, err := finance.NewCurrency("EUR", "Euro", "€", 2)
	require.NoError(t, err)
	usd, err := finance.NewCurrency("USD", "US Dollar", "$", 2)
	require.NoError(t, err)

	repo := new(MockCurrencyRepository)
	repo.On("FindAll", mock.Anything, mock.Anything).Return([]finance.Currency{*eur, *usd}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	engine := setupCurrencyRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies?page=1&page_size=20", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Code string `json:"code"`
		} `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
}
