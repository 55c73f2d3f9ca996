// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and the table bindings are JSONB documents on the order row; an
// order is small and always loaded whole, so there is no separate items table.
// Monetary totals are stored as derived columns for the read side, but the
// restore path recomputes them from the items.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LocationID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffID          uuid.UUID       `gorm:"type:uuid;not null"`
	OrderNumber      string          `gorm:"type:varchar(64);not null"`
	OrderType        int             `gorm:"type:int;not null"`
	OrderMode        int             `gorm:"type:int;not null"`
	TableIDs         []byte          `gorm:"type:jsonb"`
	TableNames       []byte          `gorm:"type:jsonb"`
	Items            []byte          `gorm:"type:jsonb"`
	Status           int             `gorm:"type:int;not null;index"`
	CGSTPct          decimal.Decimal `gorm:"type:numeric(5,2)"`
	SGSTPct          decimal.Decimal `gorm:"type:numeric(5,2)"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(12,2)"`
	CGSTAmount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	SGSTAmount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	GSTAmount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total            decimal.Decimal `gorm:"type:numeric(12,2)"`
	SessionStartedAt *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
	TransferredAt    *time.Time
	TransferredBy    *uuid.UUID `gorm:"type:uuid"`
	TransferNotes    string     `gorm:"type:text"`
	SettledAt        *time.Time
	CancelledAt      *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSONB shape of a single line item.
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

func itemsToJSON(items []order.Item) ([]byte, error) {
	dtos := make([]itemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemDTO{
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

	return json.Marshal(dtos)
}

func itemsFromJSON(raw []byte) ([]order.Item, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []itemDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromString(dto.ID)
		if err != nil {
			return nil, err
		}

		menuItemID, err := kernel.UUIDFromString(dto.MenuItemID)
		if err != nil {
			return nil, err
		}

		price, err := decimal.NewFromString(dto.Price)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(
			id, menuItemID,
			dto.Name, price, dto.Quantity,
			dto.Modifications, dto.Notes, dto.PortionSize,
			dto.AddedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func uuidsToJSON(ids []kernel.UUID) ([]byte, error) {
	return json.Marshal(kernel.UUIDsToStrings(ids))
}

func uuidsFromJSON(raw []byte) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	return kernel.UUIDsFromStrings(values)
}

func stringsToJSON(values []string) ([]byte, error) {
	return json.Marshal(values)
}

func stringsFromJSON(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	return values, nil
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	tableIDs, err := uuidsToJSON(aggregate.TableIDs())
	if err != nil {
		return OrderDTO{}, err
	}

	tableNames, err := stringsToJSON(aggregate.TableNames())
	if err != nil {
		return OrderDTO{}, err
	}

	items, err := itemsToJSON(aggregate.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:               aggregate.ID().Bytes(),
		LocationID:       aggregate.LocationID().Bytes(),
		StaffID:          aggregate.StaffID().Bytes(),
		OrderNumber:      aggregate.OrderNumber(),
		OrderType:        int(aggregate.OrderType()),
		OrderMode:        int(aggregate.OrderMode()),
		TableIDs:         tableIDs,
		TableNames:       tableNames,
		Items:            items,
		Status:           int(aggregate.Status()),
		CGSTPct:          aggregate.TaxRates().CGSTPct(),
		SGSTPct:          aggregate.TaxRates().SGSTPct(),
		Subtotal:         aggregate.Totals().Subtotal,
		CGSTAmount:       aggregate.Totals().CGSTAmount,
		SGSTAmount:       aggregate.Totals().SGSTAmount,
		GSTAmount:        aggregate.Totals().GSTAmount,
		Total:            aggregate.Totals().Total,
		SessionStartedAt: aggregate.SessionStartedAt(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		TransferredAt:    aggregate.TransferredAt(),
		TransferNotes:    aggregate.TransferNotes(),
		SettledAt:        aggregate.SettledAt(),
		CancelledAt:      aggregate.CancelledAt(),
	}

	if transferredBy := aggregate.TransferredBy(); transferredBy != nil {
		raw := transferredBy.Bytes()
		dto.TransferredBy = &raw
	}

	return dto, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder, which recomputes
// the totals from the restored items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	tableIDs, err := uuidsFromJSON(dto.TableIDs)
	if err != nil {
		return nil, err
	}

	tableNames, err := stringsFromJSON(dto.TableNames)
	if err != nil {
		return nil, err
	}

	items, err := itemsFromJSON(dto.Items)
	if err != nil {
		return nil, err
	}

	rates, err := order.NewTaxRates(dto.CGSTPct, dto.SGSTPct)
	if err != nil {
		return nil, err
	}

	var transferredBy *kernel.UUID
	if dto.TransferredBy != nil {
		byID, byErr := kernel.UUIDFromBytes((*dto.TransferredBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		transferredBy = &byID
	}

	return order.RestoreOrder(
		id, locationID, staffID,
		dto.OrderNumber,
		order.Type(dto.OrderType),
		order.Mode(dto.OrderMode),
		tableIDs,
		tableNames,
		items,
		order.Status(dto.Status),
		rates,
		dto.SessionStartedAt,
		dto.CreatedAt, dto.UpdatedAt,
		dto.TransferredAt,
		transferredBy,
		dto.TransferNotes,
		dto.SettledAt,
		dto.CancelledAt,
	)
}
