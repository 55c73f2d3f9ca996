// Package http exposes the table and order use cases over a JSON API.
// Handlers translate between wire contracts and application commands; all
// business rules live behind the command and query handlers.
package http

import (
	"net/http"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/application/usecases/queries"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	reserveTableHandler    commands.ReserveTableCommandHandler
	releaseTableHandler    commands.ReleaseTableCommandHandler
	mergeTablesHandler     commands.MergeTablesCommandHandler
	splitTablesHandler     commands.SplitTablesCommandHandler
	startOrderHandler      commands.StartOrderCommandHandler
	addOrderItemHandler    commands.AddOrderItemCommandHandler
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler
	setItemQuantityHandler commands.SetItemQuantityCommandHandler
	placeOrderHandler      commands.PlaceOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	transferOrderHandler   commands.TransferOrderCommandHandler
	settleOrderHandler     commands.SettleOrderCommandHandler

	// Query handlers
	getTablesHandler           queries.GetTablesQueryHandler
	getActiveOrderHandler      queries.GetActiveOrderQueryHandler
	getPendingTransfersHandler queries.GetPendingTransfersQueryHandler
	getSettledOrdersHandler    queries.GetSettledOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	reserveTableHandler commands.ReserveTableCommandHandler,
	releaseTableHandler commands.ReleaseTableCommandHandler,
	mergeTablesHandler commands.MergeTablesCommandHandler,
	splitTablesHandler commands.SplitTablesCommandHandler,
	startOrderHandler commands.StartOrderCommandHandler,
	addOrderItemHandler commands.AddOrderItemCommandHandler,
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler,
	setItemQuantityHandler commands.SetItemQuantityCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	transferOrderHandler commands.TransferOrderCommandHandler,
	settleOrderHandler commands.SettleOrderCommandHandler,
	getTablesHandler queries.GetTablesQueryHandler,
	getActiveOrderHandler queries.GetActiveOrderQueryHandler,
	getPendingTransfersHandler queries.GetPendingTransfersQueryHandler,
	getSettledOrdersHandler queries.GetSettledOrdersQueryHandler,
) *Server {
	return &Server{
		reserveTableHandler:        reserveTableHandler,
		releaseTableHandler:        releaseTableHandler,
		mergeTablesHandler:         mergeTablesHandler,
		splitTablesHandler:         splitTablesHandler,
		startOrderHandler:          startOrderHandler,
		addOrderItemHandler:        addOrderItemHandler,
		removeOrderItemHandler:     removeOrderItemHandler,
		setItemQuantityHandler:     setItemQuantityHandler,
		placeOrderHandler:          placeOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		transferOrderHandler:       transferOrderHandler,
		settleOrderHandler:         settleOrderHandler,
		getTablesHandler:           getTablesHandler,
		getActiveOrderHandler:      getActiveOrderHandler,
		getPendingTransfersHandler: getPendingTransfersHandler,
		getSettledOrdersHandler:    getSettledOrdersHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/locations/:locationId/tables", s.GetTables)
	api.GET("/locations/:locationId/pending-transfers", s.GetPendingTransfers)
	api.GET("/locations/:locationId/settled-orders", s.GetSettledOrders)

	api.POST("/tables/:tableId/reserve", s.ReserveTable)
	api.POST("/tables/:tableId/release", s.ReleaseTable)
	api.POST("/tables/merge", s.MergeTables)
	api.POST("/tables/:tableId/split", s.SplitTables)

	api.POST("/orders", s.StartOrder)
	api.POST("/orders/:orderId/items", s.AddOrderItem)
	api.DELETE("/orders/:orderId/items/:itemId", s.RemoveOrderItem)
	api.PUT("/orders/:orderId/items/:itemId/quantity", s.SetItemQuantity)
	api.POST("/orders/:orderId/place", s.PlaceOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/transfer", s.TransferOrder)
	api.POST("/orders/:orderId/settle", s.SettleOrder)

	api.GET("/devices/:deviceId/active-order", s.GetActiveOrder)
}

// GetTables handles GET /api/v1/locations/:locationId/tables - the floor view.
func (s *Server) GetTables(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetTablesQuery(locationID)
	if err != nil {
		return badRequest(ctx, err)
	}

	tables, err := s.getTablesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]Table, len(tables))
	for i, t := range tables {
		row := Table{
			ID:            t.ID.String(),
			Name:          t.Name,
			Capacity:      t.Capacity,
			Status:        t.Status,
			OccupiedAt:    t.OccupiedAt,
			CustomerName:  t.CustomerName,
			ReservedUntil: t.ReservedUntil,
			MergedWith:    kernel.UUIDsToStrings(t.MergedWith),
		}
		if t.CurrentOrderID != nil {
			orderID := t.CurrentOrderID.String()
			row.CurrentOrderID = &orderID
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReserveTable handles POST /api/v1/tables/:tableId/reserve.
func (s *Server) ReserveTable(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("tableId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ReserveTableRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	reservedBy, err := kernel.UUIDFromString(request.ReservedBy)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReserveTableCommand(
		tableID, reservedBy, request.CustomerName, request.CustomerPhone, request.Notes,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.reserveTableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseTable handles POST /api/v1/tables/:tableId/release.
func (s *Server) ReleaseTable(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("tableId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReleaseTableCommand(tableID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.releaseTableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MergeTables handles POST /api/v1/tables/merge.
func (s *Server) MergeTables(ctx echo.Context) error {
	var request MergeTablesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	tableIDs, err := kernel.UUIDsFromStrings(request.TableIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMergeTablesCommand(tableIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.mergeTablesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SplitTables handles POST /api/v1/tables/:tableId/split - dissolves the
// merge group the table belongs to.
func (s *Server) SplitTables(ctx echo.Context) error {
	tableID, err := kernel.UUIDFromString(ctx.Param("tableId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSplitTablesCommand(tableID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.splitTablesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartOrder handles POST /api/v1/orders - opens a session and returns the
// generated order id.
func (s *Server) StartOrder(ctx echo.Context) error {
	var request StartOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	locationID, err := kernel.UUIDFromString(request.LocationID)
	if err != nil {
		return badRequest(ctx, err)
	}
	staffID, err := kernel.UUIDFromString(request.StaffID)
	if err != nil {
		return badRequest(ctx, err)
	}
	deviceID, err := kernel.UUIDFromString(request.DeviceID)
	if err != nil {
		return badRequest(ctx, err)
	}
	tableIDs, err := kernel.UUIDsFromStrings(request.TableIDs)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderType, err := order.TypeFromString(request.OrderType)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderMode, err := order.ModeFromString(request.OrderMode)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewStartOrderCommand(
		locationID, staffID, deviceID, request.OrderNumber, orderType, orderMode, tableIDs,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.startOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, StartOrderResponse{OrderID: cmd.OrderID().String()})
}

// AddOrderItem handles POST /api/v1/orders/:orderId/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request AddOrderItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	menuItemID, err := kernel.UUIDFromString(request.MenuItemID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAddOrderItemCommand(
		orderID, menuItemID, request.Quantity, request.Modifications, request.Notes, request.PortionSize,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:orderId/items/:itemId.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.removeOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetItemQuantity handles PUT /api/v1/orders/:orderId/items/:itemId/quantity.
// Quantity zero removes the line.
func (s *Server) SetItemQuantity(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request SetItemQuantityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetItemQuantityCommand(orderID, itemID, request.Quantity)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.setItemQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/orders/:orderId/place - confirms the order
// to the kitchen and makes it durable.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	deviceID, err := kernel.UUIDFromString(request.DeviceID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, deviceID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransferOrder handles POST /api/v1/orders/:orderId/transfer - the
// staff-to-manager handoff. The operation is idempotent, so on an
// infrastructure failure the device is told to retry rather than given a
// generic 500.
func (s *Server) TransferOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request TransferOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	staffID, err := kernel.UUIDFromString(request.StaffID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewTransferOrderCommand(orderID, staffID, request.Notes)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.transferOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "transfer not confirmed, retry the request",
			})
		}
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SettleOrder handles POST /api/v1/orders/:orderId/settle.
func (s *Server) SettleOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSettleOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.settleOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrder handles GET /api/v1/devices/:deviceId/active-order - the
// device's current order, cache first.
func (s *Server) GetActiveOrder(ctx echo.Context) error {
	deviceID, err := kernel.UUIDFromString(ctx.Param("deviceId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetActiveOrderQuery(deviceID)
	if err != nil {
		return badRequest(ctx, err)
	}

	active, err := s.getActiveOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	items := make([]OrderItem, len(active.Items))
	for i, item := range active.Items {
		items[i] = OrderItem{
			ID:            item.ID.String(),
			MenuItemID:    item.MenuItemID.String(),
			Name:          item.Name,
			Price:         item.Price.String(),
			Quantity:      item.Quantity,
			LineTotal:     item.LineTotal.String(),
			Modifications: item.Modifications,
			Notes:         item.Notes,
			PortionSize:   item.PortionSize,
		}
	}

	return ctx.JSON(http.StatusOK, Order{
		ID:          active.OrderID.String(),
		OrderNumber: active.OrderNumber,
		OrderType:   active.OrderType,
		OrderMode:   active.OrderMode,
		Status:      active.Status,
		TableNames:  active.TableNames,
		Items:       items,
		Subtotal:    active.Subtotal.String(),
		CGSTAmount:  active.CGSTAmount.String(),
		SGSTAmount:  active.SGSTAmount.String(),
		GSTAmount:   active.GSTAmount.String(),
		Total:       active.Total.String(),
		CreatedAt:   active.CreatedAt,
		UpdatedAt:   active.UpdatedAt,
	})
}

// GetPendingTransfers handles GET /api/v1/locations/:locationId/pending-transfers -
// the manager's settlement queue.
func (s *Server) GetPendingTransfers(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetPendingTransfersQuery(locationID)
	if err != nil {
		return badRequest(ctx, err)
	}

	transfers, err := s.getPendingTransfersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]PendingTransfer, len(transfers))
	for i, t := range transfers {
		items := make([]PendingTransferItem, len(t.Items))
		for j, item := range t.Items {
			items[j] = PendingTransferItem{
				Name:        item.Name,
				Price:       item.Price.String(),
				Quantity:    item.Quantity,
				PortionSize: item.PortionSize,
			}
		}
		response[i] = PendingTransfer{
			OrderID:       t.OrderID.String(),
			OrderNumber:   t.OrderNumber,
			TableNames:    t.TableNames,
			Items:         items,
			Subtotal:      t.Subtotal.String(),
			GSTAmount:     t.GSTAmount.String(),
			Total:         t.Total.String(),
			TransferredAt: t.TransferredAt,
			TransferredBy: t.TransferredBy.String(),
			TransferNotes: t.TransferNotes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSettledOrders handles GET /api/v1/locations/:locationId/settled-orders -
// the day book.
func (s *Server) GetSettledOrders(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetSettledOrdersQuery(locationID)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getSettledOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]SettledOrder, len(orders))
	for i, o := range orders {
		response[i] = SettledOrder{
			OrderID:     o.OrderID.String(),
			OrderNumber: o.OrderNumber,
			StaffID:     o.StaffID.String(),
			TableNames:  o.TableNames,
			Subtotal:    o.Subtotal.String(),
			CGSTAmount:  o.CGSTAmount.String(),
			SGSTAmount:  o.SGSTAmount.String(),
			Total:       o.Total.String(),
			SettledAt:   o.SettledAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
