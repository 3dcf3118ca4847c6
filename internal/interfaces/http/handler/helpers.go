package handler

import (
	"errors"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindListFilter binds common pagination query parameters into a shared.Filter
func bindListFilter(c *gin.Context) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}, nil
}

// resolveCounterparty builds the counterparty reference from the flat union
// fields, rejecting input that names more than one party
func resolveCounterparty(customerID, supplierID *string) (finance.CounterpartyRef, error) {
	if customerID != nil && supplierID != nil {
		return finance.CounterpartyRef{}, errors.New("at most one of customer_id and supplier_id may be provided")
	}
	if customerID != nil {
		id, err := uuid.Parse(*customerID)
		if err != nil {
			return finance.CounterpartyRef{}, err
		}
		return finance.CustomerRef(id), nil
	}
	if supplierID != nil {
		id, err := uuid.Parse(*supplierID)
		if err != nil {
			return finance.CounterpartyRef{}, err
		}
		return finance.SupplierRef(id), nil
	}
	return finance.CounterpartyRef{}, nil
}

// resolveDocument builds the document reference from the flat union fields,
// rejecting input that names more than one document
func resolveDocument(customerInvoiceID, supplierInvoiceID, salesOrderID, purchaseOrderID *string) (finance.DocumentRef, error) {
	set := 0
	for _, v := range []*string{customerInvoiceID, supplierInvoiceID, salesOrderID, purchaseOrderID} {
		if v != nil {
			set++
		}
	}
	if set > 1 {
		return finance.DocumentRef{}, errors.New("at most one document reference may be provided")
	}

	switch {
	case customerInvoiceID != nil:
		id, err := uuid.Parse(*customerInvoiceID)
		if err != nil {
			return finance.DocumentRef{}, err
		}
		return finance.CustomerInvoiceRef(id), nil
	case supplierInvoiceID != nil:
		id, err := uuid.Parse(*supplierInvoiceID)
		if err != nil {
			return finance.DocumentRef{}, err
		}
		return finance.SupplierInvoiceRef(id), nil
	case salesOrderID != nil:
		id, err := uuid.Parse(*salesOrderID)
		if err != nil {
			return finance.DocumentRef{}, err
		}
		return finance.SalesOrderRef(id), nil
	case purchaseOrderID != nil:
		id, err := uuid.Parse(*purchaseOrderID)
		if err != nil {
			return finance.DocumentRef{}, err
		}
		return finance.PurchaseOrderRef(id), nil
	}
	return finance.DocumentRef{}, nil
}

// resolveAccount builds the settlement account reference from the flat union
// fields; exactly one account is required
func resolveAccount(bankAccountID, cashRegisterSessionID *string) (finance.AccountRef, error) {
	if bankAccountID != nil && cashRegisterSessionID != nil {
		return finance.AccountRef{}, errors.New("exactly one of bank_account_id and cash_register_session_id must be provided")
	}
	if bankAccountID != nil {
		id, err := uuid.Parse(*bankAccountID)
		if err != nil {
			return finance.AccountRef{}, err
		}
		return finance.BankAccountRef(id), nil
	}
	if cashRegisterSessionID != nil {
		id, err := uuid.Parse(*cashRegisterSessionID)
		if err != nil {
			return finance.AccountRef{}, err
		}
		return finance.CashSessionRef(id), nil
	}
	return finance.AccountRef{}, errors.New("exactly one of bank_account_id and cash_register_session_id must be provided")
}
