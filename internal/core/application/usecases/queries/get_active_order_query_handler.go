package queries

import (
	"context"
	"errors"

	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"
)

// GetActiveOrderQueryHandler resolves a device's active order. The pointer
// and the order body both live in the cache; if the body has expired but the
// order was already placed, the durable copy serves as fallback so the
// device screen survives a cache flush.
type GetActiveOrderQueryHandler struct {
	cache     ports.OrderCache
	orderRepo ports.OrderRepository
}

// NewGetActiveOrderQueryHandler creates a handler for active order lookups.
func NewGetActiveOrderQueryHandler(
	cache ports.OrderCache,
	orderRepo ports.OrderRepository,
) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{
		cache:     cache,
		orderRepo: orderRepo,
	}
}

// Handle executes the query to resolve the device's active order.
// Returns errs.ErrObjectNotFound when the device has no active order.
func (h GetActiveOrderQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderQuery,
) (GetActiveOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveOrderQueryResponse{}, err
	}

	orderID, err := h.cache.ActiveOrder(ctx, query.DeviceID())
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}

	aggregate, err := h.cache.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		aggregate, err = h.orderRepo.Get(ctx, orderID)
	}
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}

	return toActiveOrderResponse(aggregate), nil
}

func toActiveOrderResponse(aggregate *order.Order) GetActiveOrderQueryResponse {
	items := make([]ActiveOrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ActiveOrderItemResponse{
			ID:            item.ID(),
			MenuItemID:    item.MenuItemID(),
			Name:          item.Name(),
			Price:         item.Price(),
			Quantity:      item.Quantity(),
			LineTotal:     item.LineTotal(),
			Modifications: item.Modifications(),
			Notes:         item.Notes(),
			PortionSize:   item.PortionSize(),
		})
	}

	totals := aggregate.Totals()

	return GetActiveOrderQueryResponse{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		OrderType:   aggregate.OrderType().String(),
		OrderMode:   aggregate.OrderMode().String(),
		Status:      aggregate.Status().String(),
		TableNames:  aggregate.TableNames(),
		Items:       items,
		Subtotal:    totals.Subtotal,
		CGSTAmount:  totals.CGSTAmount,
		SGSTAmount:  totals.SGSTAmount,
		GSTAmount:   totals.GSTAmount,
		Total:       totals.Total,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}
