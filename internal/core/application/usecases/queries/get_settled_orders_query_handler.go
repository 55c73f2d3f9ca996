package queries

import (
	"context"
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSettledOrdersQueryHandler retrieves settled orders from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern;
// the stored totals columns are read as-is rather than rehydrating the
// aggregate and recomputing.
type GetSettledOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSettledOrdersQueryHandler creates a handler for day book queries.
// Requires a GORM database connection for query execution.
func NewGetSettledOrdersQueryHandler(db *gorm.DB) GetSettledOrdersQueryHandler {
	return GetSettledOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve a location's settled orders,
// most recently settled first.
func (h GetSettledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSettledOrdersQuery,
) ([]GetSettledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetSettledOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			staff_id,
			table_names,
			subtotal,
			cgst_amount,
			sgst_amount,
			total,
			settled_at
		FROM orders
		WHERE location_id = ? AND status = ?
		ORDER BY settled_at DESC
	`, query.LocationID().Bytes(), order.Settled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetSettledOrdersQueryResponse
		var id, staffID uuid.UUID
		var tableNames []byte
		var settledAt time.Time

		err = rows.Scan(
			&id,
			&response.OrderNumber,
			&staffID,
			&tableNames,
			&response.Subtotal,
			&response.CGSTAmount,
			&response.SGSTAmount,
			&response.Total,
			&settledAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = orderID

		staff, staffErr := kernel.UUIDFromBytes(staffID[:])
		if staffErr != nil {
			return nil, staffErr
		}
		response.StaffID = staff
		response.SettledAt = settledAt

		if len(tableNames) > 0 {
			if jsonErr := json.Unmarshal(tableNames, &response.TableNames); jsonErr != nil {
				return nil, jsonErr
			}
		}

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
