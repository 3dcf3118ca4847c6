package persistence

import (
	"context"
	"errors"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashRegisterSessionRepository implements CashRegisterSessionRepository using GORM
type GormCashRegisterSessionRepository struct {
	db *gorm.DB
}

// NewGormCashRegisterSessionRepository creates a new GormCashRegisterSessionRepository
func NewGormCashRegisterSessionRepository(db *gorm.DB) *GormCashRegisterSessionRepository {
	return &GormCashRegisterSessionRepository{db: db}
}

// FindByID finds a session by ID with its register preloaded
func (r *GormCashRegisterSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashRegisterSession, error) {
	var session finance.CashRegisterSession
	if err := r.db.WithContext(ctx).
		Preload("Register").
		First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindOpenByRegister finds the open session of a register, if any
func (r *GormCashRegisterSessionRepository) FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*finance.CashRegisterSession, error) {
	var session finance.CashRegisterSession
	if err := r.db.WithContext(ctx).
		Preload("Register").
		Where("register_id = ? AND status = ?", registerID, finance.SessionStatusOpen).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByRegister finds sessions of a register, newest first
func (r *GormCashRegisterSessionRepository) FindByRegister(ctx context.Context, registerID uuid.UUID, filter shared.Filter) ([]finance.CashRegisterSession, error) {
	var sessions []finance.CashRegisterSession
	query := r.db.WithContext(ctx).
		Model(&finance.CashRegisterSession{}).
		Where("register_id = ?", registerID)
	query = applyListFilter(query, filter, "opened_at DESC")

	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save creates or updates a session. The preloaded register is never written
// back through this path.
func (r *GormCashRegisterSessionRepository) Save(ctx context.Context, session *finance.CashRegisterSession) error {
	return r.db.WithContext(ctx).Omit("Register").Save(session).Error
}

var _ finance.CashRegisterSessionRepository = (*GormCashRegisterSessionRepository)(nil)
