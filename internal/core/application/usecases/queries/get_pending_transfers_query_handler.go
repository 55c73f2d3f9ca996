package queries

import (
	"context"
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPendingTransfersQueryHandler retrieves the manager's settlement queue
// from the database. The projection rows are joined against the orders table
// so handoffs whose order has already left Transferred status drop out of
// the queue without a projection delete.
type GetPendingTransfersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingTransfersQueryHandler creates a handler for settlement queue queries.
// Requires a GORM database connection for query execution.
func NewGetPendingTransfersQueryHandler(db *gorm.DB) GetPendingTransfersQueryHandler {
	return GetPendingTransfersQueryHandler{db: db}
}

// pendingItemDTO mirrors the JSONB item shape written by the projection repository.
type pendingItemDTO struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	PortionSize string `json:"portionSize,omitempty"`
}

// Handle executes the query to retrieve a location's pending handoffs,
// newest first.
func (h GetPendingTransfersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingTransfersQuery,
) ([]GetPendingTransfersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transfers := make([]GetPendingTransfersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			pt.order_id,
			pt.order_number,
			pt.table_names,
			pt.items,
			pt.subtotal,
			pt.gst_amount,
			pt.total,
			pt.transferred_at,
			pt.transferred_by,
			pt.transfer_notes
		FROM pending_transfers pt
		JOIN orders o ON o.id = pt.order_id
		WHERE pt.location_id = ? AND o.status = ?
		ORDER BY pt.transferred_at DESC
	`, query.LocationID().Bytes(), order.Transferred).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetPendingTransfersQueryResponse
		var orderID, transferredBy uuid.UUID
		var tableNames, items []byte
		var transferredAt time.Time

		err = rows.Scan(
			&orderID,
			&response.OrderNumber,
			&tableNames,
			&items,
			&response.Subtotal,
			&response.GSTAmount,
			&response.Total,
			&transferredAt,
			&transferredBy,
			&response.TransferNotes,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = id

		byID, byErr := kernel.UUIDFromBytes(transferredBy[:])
		if byErr != nil {
			return nil, byErr
		}
		response.TransferredBy = byID
		response.TransferredAt = transferredAt

		if len(tableNames) > 0 {
			if jsonErr := json.Unmarshal(tableNames, &response.TableNames); jsonErr != nil {
				return nil, jsonErr
			}
		}

		if len(items) > 0 {
			var itemDTOs []pendingItemDTO
			if jsonErr := json.Unmarshal(items, &itemDTOs); jsonErr != nil {
				return nil, jsonErr
			}

			response.Items = make([]PendingTransferItemResponse, 0, len(itemDTOs))
			for _, dto := range itemDTOs {
				price, priceErr := decimal.NewFromString(dto.Price)
				if priceErr != nil {
					return nil, priceErr
				}

				response.Items = append(response.Items, PendingTransferItemResponse{
					Name:        dto.Name,
					Price:       price,
					Quantity:    dto.Quantity,
					PortionSize: dto.PortionSize,
				})
			}
		}

		transfers = append(transfers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transfers, nil
}
