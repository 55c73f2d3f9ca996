package http

import (
	"errors"
	"net/http"
	"time"

	"dinein/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON envelope returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Request bodies. IDs travel as UUID strings and are validated when the
// command is constructed.
type (
	ReserveTableRequest struct {
		ReservedBy    string `json:"reservedBy"`
		CustomerName  string `json:"customerName"`
		CustomerPhone string `json:"customerPhone"`
		Notes         string `json:"notes"`
	}

	MergeTablesRequest struct {
		TableIDs []string `json:"tableIds"`
	}

	StartOrderRequest struct {
		LocationID  string   `json:"locationId"`
		StaffID     string   `json:"staffId"`
		DeviceID    string   `json:"deviceId"`
		OrderNumber string   `json:"orderNumber"`
		OrderType   string   `json:"orderType"`
		OrderMode   string   `json:"orderMode"`
		TableIDs    []string `json:"tableIds"`
	}

	AddOrderItemRequest struct {
		MenuItemID    string   `json:"menuItemId"`
		Quantity      int      `json:"quantity"`
		Modifications []string `json:"modifications"`
		Notes         string   `json:"notes"`
		PortionSize   string   `json:"portionSize"`
	}

	SetItemQuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	CancelOrderRequest struct {
		DeviceID string `json:"deviceId"`
	}

	TransferOrderRequest struct {
		StaffID string `json:"staffId"`
		Notes   string `json:"notes"`
	}
)

// Response bodies. Monetary amounts are decimal strings so clients never
// see float artifacts.
type (
	StartOrderResponse struct {
		OrderID string `json:"orderId"`
	}

	Table struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		Capacity       int        `json:"capacity"`
		Status         string     `json:"status"`
		CurrentOrderID *string    `json:"currentOrderId,omitempty"`
		OccupiedAt     *time.Time `json:"occupiedAt,omitempty"`
		CustomerName   string     `json:"customerName,omitempty"`
		ReservedUntil  *time.Time `json:"reservedUntil,omitempty"`
		MergedWith     []string   `json:"mergedWith,omitempty"`
	}

	OrderItem struct {
		ID            string   `json:"id"`
		MenuItemID    string   `json:"menuItemId"`
		Name          string   `json:"name"`
		Price         string   `json:"price"`
		Quantity      int      `json:"quantity"`
		LineTotal     string   `json:"lineTotal"`
		Modifications []string `json:"modifications,omitempty"`
		Notes         string   `json:"notes,omitempty"`
		PortionSize   string   `json:"portionSize,omitempty"`
	}

	Order struct {
		ID          string      `json:"id"`
		OrderNumber string      `json:"orderNumber"`
		OrderType   string      `json:"orderType"`
		OrderMode   string      `json:"orderMode"`
		Status      string      `json:"status"`
		TableNames  []string    `json:"tableNames,omitempty"`
		Items       []OrderItem `json:"items"`
		Subtotal    string      `json:"subtotal"`
		CGSTAmount  string      `json:"cgstAmount"`
		SGSTAmount  string      `json:"sgstAmount"`
		GSTAmount   string      `json:"gstAmount"`
		Total       string      `json:"total"`
		CreatedAt   time.Time   `json:"createdAt"`
		UpdatedAt   time.Time   `json:"updatedAt"`
	}

	PendingTransferItem struct {
		Name        string `json:"name"`
		Price       string `json:"price"`
		Quantity    int    `json:"quantity"`
		PortionSize string `json:"portionSize,omitempty"`
	}

	PendingTransfer struct {
		OrderID       string                `json:"orderId"`
		OrderNumber   string                `json:"orderNumber"`
		TableNames    []string              `json:"tableNames,omitempty"`
		Items         []PendingTransferItem `json:"items"`
		Subtotal      string                `json:"subtotal"`
		GSTAmount     string                `json:"gstAmount"`
		Total         string                `json:"total"`
		TransferredAt time.Time             `json:"transferredAt"`
		TransferredBy string                `json:"transferredBy"`
		TransferNotes string                `json:"transferNotes,omitempty"`
	}

	SettledOrder struct {
		OrderID     string    `json:"orderId"`
		OrderNumber string    `json:"orderNumber"`
		StaffID     string    `json:"staffId"`
		TableNames  []string  `json:"tableNames,omitempty"`
		Subtotal    string    `json:"subtotal"`
		CGSTAmount  string    `json:"cgstAmount"`
		SGSTAmount  string    `json:"sgstAmount"`
		Total       string    `json:"total"`
		SettledAt   time.Time `json:"settledAt"`
	}
)

// badRequest reports a malformed or invalid request body or path parameter.
func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// statusFor classifies an error from a command or query handler. Missing
// aggregates are 404; invalid transitions and out-of-range values surface
// as lifecycle conflicts, 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// domainError writes the JSON error envelope for a handler error.
func domainError(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}
