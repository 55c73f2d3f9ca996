package queries

import (
	"context"
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTablesQueryHandler retrieves a location's floor view from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetTablesQueryHandler struct {
	db *gorm.DB
}

// NewGetTablesQueryHandler creates a handler for floor view queries.
// Requires a GORM database connection for query execution.
func NewGetTablesQueryHandler(db *gorm.DB) GetTablesQueryHandler {
	return GetTablesQueryHandler{db: db}
}

// Handle executes the query to retrieve a location's tables.
// Returns a slice of table read models sorted by name.
func (h GetTablesQueryHandler) Handle(
	ctx context.Context,
	query GetTablesQuery,
) ([]GetTablesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tables := make([]GetTablesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			capacity,
			status,
			current_order_id,
			occupied_at,
			reservation_customer_name,
			reservation_expires_at,
			merged_with
		FROM tables
		WHERE location_id = ?
		ORDER BY name
	`, query.LocationID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetTablesQueryResponse
		var id uuid.UUID
		var status int
		var currentOrderID *uuid.UUID
		var occupiedAt, reservedUntil *time.Time
		var customerName *string
		var mergedWith []byte

		err = rows.Scan(
			&id,
			&response.Name,
			&response.Capacity,
			&status,
			&currentOrderID,
			&occupiedAt,
			&customerName,
			&reservedUntil,
			&mergedWith,
		)
		if err != nil {
			return nil, err
		}

		tableID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = tableID
		response.Status = table.Status(status).String()
		response.OccupiedAt = occupiedAt

		if currentOrderID != nil {
			orderID, orderErr := kernel.UUIDFromBytes((*currentOrderID)[:])
			if orderErr != nil {
				return nil, orderErr
			}
			response.CurrentOrderID = &orderID
		}

		// Reservation columns stay NULL for non-reserved tables.
		if table.Status(status) == table.Reserved {
			if customerName != nil {
				response.CustomerName = *customerName
			}
			response.ReservedUntil = reservedUntil
		}

		if len(mergedWith) > 0 {
			var memberStrings []string
			if jsonErr := json.Unmarshal(mergedWith, &memberStrings); jsonErr != nil {
				return nil, jsonErr
			}

			members, memberErr := kernel.UUIDsFromStrings(memberStrings)
			if memberErr != nil {
				return nil, memberErr
			}
			response.MergedWith = members
		}

		tables = append(tables, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}
