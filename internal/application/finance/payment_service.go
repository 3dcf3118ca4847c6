package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records and reverses payments. Recording validates every
// reference, persists the immutable payment row, applies the amount to the
// linked invoice, and posts the signed delta to the settling account, all in
// one transaction. Reversal is the exact inverse: the row is tombstoned,
// never deleted, and the invoice and account are restored by negated deltas.
type PaymentService struct {
	validator   *ReferenceValidator
	ledger      *AccountLedger
	applicator  *InvoiceApplicator
	resolver    *PaymentResolver
	uow         UnitOfWork
	paymentRepo finance.PaymentRepository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	validator *ReferenceValidator,
	ledger *AccountLedger,
	applicator *InvoiceApplicator,
	resolver *PaymentResolver,
	uow UnitOfWork,
	paymentRepo finance.PaymentRepository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		validator:   validator,
		ledger:      ledger,
		applicator:  applicator,
		resolver:    resolver,
		uow:         uow,
		paymentRepo: paymentRepo,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		logger:      logger,
	}
}

// RecordPaymentRequest carries everything needed to record one payment
type RecordPaymentRequest struct {
	Date            time.Time
	Amount          decimal.Decimal
	CurrencyID      uuid.UUID
	PaymentMethodID uuid.UUID
	Direction       finance.PaymentDirection
	Counterparty    finance.CounterpartyRef
	Document        finance.DocumentRef
	Account         finance.AccountRef
	ReferenceNumber string
	Notes           string
	RecordedBy      uuid.UUID
	IdempotencyKey  string
}

// RecordPaymentResult is the outcome of recording a payment
type RecordPaymentResult struct {
	Payment        *PaymentDetails
	AccountBalance decimal.Decimal
	Duplicate      bool
}

// ReversePaymentResult is the outcome of reversing a payment
type ReversePaymentResult struct {
	Payment        *PaymentDetails
	AccountBalance decimal.Decimal
}

// Record validates, persists, and applies one payment atomically.
// Validation failures come back as a *finance.ValidationResult error carrying
// every violation found, not just the first.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrAmount, req.Amount.String(),
		telemetry.SpanAttrDirection, string(req.Direction),
	)

	payment, err := finance.NewPayment(
		req.Date,
		req.Amount,
		req.CurrencyID,
		req.PaymentMethodID,
		req.Direction,
		req.Counterparty,
		req.Document,
		req.Account,
		req.ReferenceNumber,
		req.Notes,
		req.RecordedBy,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrPaymentID, payment.ID.String())

	result, err := s.validator.Validate(ctx, payment)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("reference validation failed: %w", err)
	}
	if !result.IsValid() {
		telemetry.RecordError(span, &result)
		return nil, &result
	}

	claimed, existingID, err := s.rememberKey(ctx, req.IdempotencyKey, payment.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !claimed {
		existing, err := s.findByStoredID(ctx, existingID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		s.logger.Info("duplicate payment suppressed by idempotency key",
			zap.String("payment_id", existing.ID.String()),
			zap.String("idempotency_key", req.IdempotencyKey))
		details, err := s.resolver.Resolve(ctx, existing)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		return &RecordPaymentResult{Payment: details, Duplicate: true}, nil
	}

	var balance decimal.Decimal
	txErr := s.uow.Execute(ctx, func(ctx context.Context, repos TxRepos) error {
		if err := repos.Payments().Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		// Invoices accumulate the raw amount regardless of direction:
		// customer invoices track money received, supplier invoices money
		// paid out, so AmountPaid always grows on record.
		if err := s.applicator.Apply(ctx, repos, payment.DocumentRef(), payment.Amount); err != nil {
			return err
		}

		kind := finance.CashTransactionKindPaymentIn
		if payment.Direction == finance.PaymentDirectionOutbound {
			kind = finance.CashTransactionKindPaymentOut
		}
		var err error
		balance, err = s.ledger.Apply(ctx, repos, payment, payment.SignedAccountDelta(), kind, paymentDescription(payment))
		if err != nil {
			return err
		}

		return s.appendAudit(ctx, repos, audit.ActionCreate, payment, req.RecordedBy, audit.Details{
			"amount":            payment.Amount.String(),
			"direction":         string(payment.Direction),
			"payment_method_id": payment.PaymentMethodID.String(),
		})
	})
	if txErr != nil {
		s.forgetKey(ctx, req.IdempotencyKey)
		telemetry.RecordError(span, txErr)
		return nil, txErr
	}

	// The payment is committed at this point; an assembly failure is a server
	// fault and must not release the idempotency key.
	details, err := s.resolver.Resolve(ctx, payment)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "payment_recorded",
		telemetry.SpanAttrPaymentID, payment.ID.String(),
		"account_balance", balance.String(),
	)
	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("direction", string(payment.Direction)),
		zap.String("amount", payment.Amount.String()))

	return &RecordPaymentResult{Payment: details, AccountBalance: balance}, nil
}

// Reverse tombstones a live payment and undoes its effects: the linked
// invoice's AmountPaid drops by the payment amount and the account balance
// moves by the opposite of the original delta. Reversing an already reversed
// payment is a conflict, never a second application.
func (s *PaymentService) Reverse(ctx context.Context, paymentID, actorID uuid.UUID) (*ReversePaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "reverse")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPaymentID, paymentID.String())

	if actorID == uuid.Nil {
		err := shared.NewDomainError("INVALID_USER", "Acting user ID is required")
		telemetry.RecordError(span, err)
		return nil, err
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if payment.IsReversed() {
		err := shared.NewDomainError("ALREADY_REVERSED", "Payment has already been reversed")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := payment.MarkReversed(actorID, time.Now().UTC()); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var balance decimal.Decimal
	txErr := s.uow.Execute(ctx, func(ctx context.Context, repos TxRepos) error {
		// The tombstone write is conditional on the row still being live;
		// losing the race surfaces here as ALREADY_REVERSED and rolls back
		// everything else.
		if err := repos.Payments().MarkReversed(ctx, payment); err != nil {
			return err
		}

		if err := s.applicator.Apply(ctx, repos, payment.DocumentRef(), payment.Amount.Neg()); err != nil {
			return err
		}

		var err error
		balance, err = s.ledger.Apply(ctx, repos, payment, payment.SignedAccountDelta().Neg(),
			finance.CashTransactionKindReversal, reversalDescription(payment))
		if err != nil {
			return err
		}

		return s.appendAudit(ctx, repos, audit.ActionReverse, payment, actorID, audit.Details{
			"amount":            payment.Amount.String(),
			"direction":         string(payment.Direction),
			"payment_method_id": payment.PaymentMethodID.String(),
		})
	})
	if txErr != nil {
		telemetry.RecordError(span, txErr)
		return nil, txErr
	}

	details, err := s.resolver.Resolve(ctx, payment)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "payment_reversed",
		telemetry.SpanAttrPaymentID, payment.ID.String(),
		"account_balance", balance.String(),
	)
	s.logger.Info("payment reversed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("actor_id", actorID.String()))

	return &ReversePaymentResult{Payment: details, AccountBalance: balance}, nil
}

// Get returns a payment by ID with its resolved summaries, reversed or not
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*PaymentDetails, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, payment)
}

// List returns payments matching the filter with the total match count
func (s *PaymentService) List(ctx context.Context, filter finance.PaymentFilter) (*shared.Paginated[finance.Payment], error) {
	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(payments, total, page, filter.Limit())
	return &result, nil
}

func (s *PaymentService) rememberKey(ctx context.Context, key string, paymentID uuid.UUID) (bool, string, error) {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return true, "", nil
	}
	claimed, existing, err := s.idempotency.Remember(ctx, key, paymentID.String(), s.idemConfig.TTL)
	if err != nil {
		return false, "", fmt.Errorf("idempotency check failed: %w", err)
	}
	return claimed, existing, nil
}

func (s *PaymentService) forgetKey(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return
	}
	if err := s.idempotency.Forget(ctx, key); err != nil {
		s.logger.Warn("failed to release idempotency key",
			zap.String("idempotency_key", key), zap.Error(err))
	}
}

func (s *PaymentService) findByStoredID(ctx context.Context, stored string) (*finance.Payment, error) {
	id, err := uuid.Parse(stored)
	if err != nil {
		return nil, fmt.Errorf("idempotency store returned malformed payment ID %q: %w", stored, shared.ErrInternal)
	}
	return s.paymentRepo.FindByID(ctx, id)
}

func (s *PaymentService) appendAudit(ctx context.Context, repos TxRepos, action audit.Action, payment *finance.Payment, actorID uuid.UUID, details audit.Details) error {
	entry, err := audit.NewEntry(action, "payment", payment.ID, actorID, details)
	if err != nil {
		return fmt.Errorf("failed to build audit entry: %w", err)
	}
	if err := repos.AuditLog().Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func paymentDescription(p *finance.Payment) string {
	if p.ReferenceNumber != "" {
		return fmt.Sprintf("Payment %s", p.ReferenceNumber)
	}
	return fmt.Sprintf("Payment %s", p.ID)
}

func reversalDescription(p *finance.Payment) string {
	if p.ReferenceNumber != "" {
		return fmt.Sprintf("Reversal of payment %s", p.ReferenceNumber)
	}
	return fmt.Sprintf("Reversal of payment %s", p.ID)
}
