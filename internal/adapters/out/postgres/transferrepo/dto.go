// Package transferrepo provides data transfer objects and mapping functions for
// the manager-facing pending transfer projection. Rows are keyed by order id and
// written exactly once per handoff, so the mapping is append-oriented.
package transferrepo

import (
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingTransferDTO represents the database structure for the transfer
// projection. The item snapshot and table bindings are JSONB documents;
// totals are frozen at handoff time rather than recomputed.
type PendingTransferDTO struct {
	OrderID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LocationID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffID       uuid.UUID       `gorm:"type:uuid;not null"`
	OrderNumber   string          `gorm:"type:varchar(64);not null"`
	OrderType     int             `gorm:"type:int;not null"`
	TableIDs      []byte          `gorm:"type:jsonb"`
	TableNames    []byte          `gorm:"type:jsonb"`
	Items         []byte          `gorm:"type:jsonb"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2)"`
	CGSTAmount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	SGSTAmount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	GSTAmount     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2)"`
	TransferredAt time.Time       `gorm:"index"`
	TransferredBy uuid.UUID       `gorm:"type:uuid"`
	TransferNotes string          `gorm:"type:text"`
}

// TableName specifies the database table name for pending transfer rows.
func (PendingTransferDTO) TableName() string {
	return "pending_transfers"
}

// itemDTO is the JSONB shape of a single snapshotted line item.
type itemDTO struct {
	ID            string    `json:"id"`
	MenuItemID    string    `json:"menuItemId"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	Quantity      int       `json:"quantity"`
	Modifications []string  `json:"modifications,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	PortionSize   string    `json:"portionSize,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
}

// fromDomain converts a pending transfer projection to its database representation.
func fromDomain(projection *transfer.PendingTransfer) (PendingTransferDTO, error) {
	tableIDs, err := json.Marshal(kernel.UUIDsToStrings(projection.TableIDs()))
	if err != nil {
		return PendingTransferDTO{}, err
	}

	tableNames, err := json.Marshal(projection.TableNames())
	if err != nil {
		return PendingTransferDTO{}, err
	}

	itemDTOs := make([]itemDTO, 0, len(projection.Items()))
	for _, item := range projection.Items() {
		itemDTOs = append(itemDTOs, itemDTO{
			ID:            item.ID().String(),
			MenuItemID:    item.MenuItemID().String(),
			Name:          item.Name(),
			Price:         item.Price().String(),
			Quantity:      item.Quantity(),
			Modifications: item.Modifications(),
			Notes:         item.Notes(),
			PortionSize:   item.PortionSize(),
			AddedAt:       item.AddedAt(),
		})
	}

	items, err := json.Marshal(itemDTOs)
	if err != nil {
		return PendingTransferDTO{}, err
	}

	return PendingTransferDTO{
		OrderID:       projection.OrderID().Bytes(),
		LocationID:    projection.LocationID().Bytes(),
		StaffID:       projection.StaffID().Bytes(),
		OrderNumber:   projection.OrderNumber(),
		OrderType:     int(projection.OrderType()),
		TableIDs:      tableIDs,
		TableNames:    tableNames,
		Items:         items,
		Subtotal:      projection.Totals().Subtotal,
		CGSTAmount:    projection.Totals().CGSTAmount,
		SGSTAmount:    projection.Totals().SGSTAmount,
		GSTAmount:     projection.Totals().GSTAmount,
		Total:         projection.Totals().Total,
		TransferredAt: projection.TransferredAt(),
		TransferredBy: projection.TransferredBy().Bytes(),
		TransferNotes: projection.TransferNotes(),
	}, nil
}

// toDomain converts a database DTO to a pending transfer projection.
func toDomain(dto PendingTransferDTO) (*transfer.PendingTransfer, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}

	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return nil, err
	}

	transferredBy, err := kernel.UUIDFromBytes(dto.TransferredBy[:])
	if err != nil {
		return nil, err
	}

	var tableIDStrings []string
	if len(dto.TableIDs) > 0 {
		if jsonErr := json.Unmarshal(dto.TableIDs, &tableIDStrings); jsonErr != nil {
			return nil, jsonErr
		}
	}

	tableIDs, err := kernel.UUIDsFromStrings(tableIDStrings)
	if err != nil {
		return nil, err
	}

	var tableNames []string
	if len(dto.TableNames) > 0 {
		if jsonErr := json.Unmarshal(dto.TableNames, &tableNames); jsonErr != nil {
			return nil, jsonErr
		}
	}

	var itemDTOs []itemDTO
	if len(dto.Items) > 0 {
		if jsonErr := json.Unmarshal(dto.Items, &itemDTOs); jsonErr != nil {
			return nil, jsonErr
		}
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, raw := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromString(raw.ID)
		if itemErr != nil {
			return nil, itemErr
		}

		menuItemID, itemErr := kernel.UUIDFromString(raw.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}

		price, itemErr := decimal.NewFromString(raw.Price)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(
			itemID, menuItemID,
			raw.Name, price, raw.Quantity,
			raw.Modifications, raw.Notes, raw.PortionSize,
			raw.AddedAt,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totals := order.Totals{
		Subtotal:   dto.Subtotal,
		CGSTAmount: dto.CGSTAmount,
		SGSTAmount: dto.SGSTAmount,
		GSTAmount:  dto.GSTAmount,
		Total:      dto.Total,
	}

	return transfer.RestorePendingTransfer(
		orderID, locationID, staffID,
		dto.OrderNumber,
		order.Type(dto.OrderType),
		tableIDs,
		tableNames,
		items,
		totals,
		dto.TransferredAt,
		transferredBy,
		dto.TransferNotes,
	)
}
