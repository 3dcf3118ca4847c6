package finance

import (
	"context"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest carries the fields for registering a bank account
type CreateBankAccountRequest struct {
	Name           string          `json:"name"`
	AccountNumber  string          `json:"account_number"`
	CurrencyID     uuid.UUID       `json:"currency_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Notes          string          `json:"notes"`
}

// BankAccountService handles bank account management. Balances move only
// through the payment ledger; this service never touches them directly.
type BankAccountService struct {
	accountRepo finance.BankAccountRepository
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(accountRepo finance.BankAccountRepository) *BankAccountService {
	return &BankAccountService{accountRepo: accountRepo}
}

// Create registers a new active bank account
func (s *BankAccountService) Create(ctx context.Context, req CreateBankAccountRequest) (*finance.BankAccount, error) {
	account, err := finance.NewBankAccount(req.Name, req.AccountNumber, req.CurrencyID, req.OpeningBalance)
	if err != nil {
		return nil, err
	}
	account.Notes = req.Notes

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetByID retrieves a bank account by ID
func (s *BankAccountService) GetByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// Deactivate retires a bank account from new payments
func (s *BankAccountService) Deactivate(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := account.Deactivate(); err != nil {
		return err
	}
	return s.accountRepo.Save(ctx, account)
}

// Activate re-enables a deactivated bank account
func (s *BankAccountService) Activate(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := account.Activate(); err != nil {
		return err
	}
	return s.accountRepo.Save(ctx, account)
}

// List retrieves bank accounts with filtering and pagination
func (s *BankAccountService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[finance.BankAccount], error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.accountRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(accounts, total, page, filter.Limit())
	return &result, nil
}
