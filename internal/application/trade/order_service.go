package trade

import (
	"context"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// SalesOrderService handles sales order lifecycle operations
type SalesOrderService struct {
	orderRepo trade.SalesOrderRepository
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(orderRepo trade.SalesOrderRepository) *SalesOrderService {
	return &SalesOrderService{orderRepo: orderRepo}
}

// Create creates a new draft sales order
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	order, err := trade.NewSalesOrder(req.Number, req.CustomerID, req.CurrencyID, req.OrderDate, req.Total)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft sales order
func (s *SalesOrderService) Confirm(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, func(o *trade.SalesOrder) error { return o.Confirm() })
}

// Complete completes a confirmed sales order
func (s *SalesOrderService) Complete(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, func(o *trade.SalesOrder) error { return o.Complete() })
}

// Cancel cancels a sales order that has not completed
func (s *SalesOrderService) Cancel(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, func(o *trade.SalesOrder) error { return o.Cancel() })
}

func (s *SalesOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SalesOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToSalesOrderResponse(&orders[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(items, total, page, filter.Limit())
	return &result, nil
}

// PurchaseOrderService handles purchase order lifecycle operations
type PurchaseOrderService struct {
	orderRepo trade.PurchaseOrderRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo trade.PurchaseOrderRepository) *PurchaseOrderService {
	return &PurchaseOrderService{orderRepo: orderRepo}
}

// Create creates a new draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := trade.NewPurchaseOrder(req.Number, req.SupplierID, req.CurrencyID, req.OrderDate, req.Total)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft purchase order
func (s *PurchaseOrderService) Confirm(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, func(o *trade.PurchaseOrder) error { return o.Confirm() })
}

// Complete completes a confirmed purchase order
func (s *PurchaseOrderService) Complete(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, func(o *trade.PurchaseOrder) error { return o.Complete() })
}

// Cancel cancels a purchase order that has not completed
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, func(o *trade.PurchaseOrder) error { return o.Cancel() })
}

func (s *PurchaseOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*trade.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToPurchaseOrderResponse(&orders[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(items, total, page, filter.Limit())
	return &result, nil
}
