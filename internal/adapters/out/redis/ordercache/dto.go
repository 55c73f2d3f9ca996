// Package ordercache provides the Redis-backed fast path for order reads and
// writes. Snapshots are full JSON documents keyed by order id, a per-device
// pointer tracks the order a device is working on, and a set records orders
// whose durable copy is behind the cache.
package ordercache

import (
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// orderSnapshot is the JSON document cached per order. It carries everything
// RestoreOrder needs; totals are recomputed on restore and deliberately not
// stored.
type orderSnapshot struct {
	ID               string     `json:"id"`
	LocationID       string     `json:"locationId"`
	StaffID          string     `json:"staffId"`
	OrderNumber      string     `json:"orderNumber"`
	OrderType        string     `json:"orderType"`
	OrderMode        string     `json:"orderMode"`
	TableIDs         []string   `json:"tableIds,omitempty"`
	TableNames       []string   `json:"tableNames,omitempty"`
	Items            []itemDTO  `json:"items,omitempty"`
	Status           string     `json:"status"`
	CGSTPct          string     `json:"cgstPct"`
	SGSTPct          string     `json:"sgstPct"`
	SessionStartedAt *time.Time `json:"sessionStartedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	TransferredAt    *time.Time `json:"transferredAt,omitempty"`
	TransferredBy    *string    `json:"transferredBy,omitempty"`
	TransferNotes    string     `json:"transferNotes,omitempty"`
	SettledAt        *time.Time `json:"settledAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
}

// itemDTO is the JSON shape of a single line item in a snapshot.
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

func marshalOrder(aggregate *order.Order) ([]byte, error) {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
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

	snapshot := orderSnapshot{
		ID:               aggregate.ID().String(),
		LocationID:       aggregate.LocationID().String(),
		StaffID:          aggregate.StaffID().String(),
		OrderNumber:      aggregate.OrderNumber(),
		OrderType:        aggregate.OrderType().String(),
		OrderMode:        aggregate.OrderMode().String(),
		TableIDs:         kernel.UUIDsToStrings(aggregate.TableIDs()),
		TableNames:       aggregate.TableNames(),
		Items:            items,
		Status:           aggregate.Status().String(),
		CGSTPct:          aggregate.TaxRates().CGSTPct().String(),
		SGSTPct:          aggregate.TaxRates().SGSTPct().String(),
		SessionStartedAt: aggregate.SessionStartedAt(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		TransferredAt:    aggregate.TransferredAt(),
		TransferNotes:    aggregate.TransferNotes(),
		SettledAt:        aggregate.SettledAt(),
		CancelledAt:      aggregate.CancelledAt(),
	}

	if transferredBy := aggregate.TransferredBy(); transferredBy != nil {
		value := transferredBy.String()
		snapshot.TransferredBy = &value
	}

	return json.Marshal(snapshot)
}

func unmarshalOrder(raw []byte) (*order.Order, error) {
	var snapshot orderSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(snapshot.ID)
	if err != nil {
		return nil, err
	}

	locationID, err := kernel.UUIDFromString(snapshot.LocationID)
	if err != nil {
		return nil, err
	}

	staffID, err := kernel.UUIDFromString(snapshot.StaffID)
	if err != nil {
		return nil, err
	}

	orderType, err := order.TypeFromString(snapshot.OrderType)
	if err != nil {
		return nil, err
	}

	orderMode, err := order.ModeFromString(snapshot.OrderMode)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(snapshot.Status)
	if err != nil {
		return nil, err
	}

	tableIDs, err := kernel.UUIDsFromStrings(snapshot.TableIDs)
	if err != nil {
		return nil, err
	}

	cgst, err := decimal.NewFromString(snapshot.CGSTPct)
	if err != nil {
		return nil, err
	}

	sgst, err := decimal.NewFromString(snapshot.SGSTPct)
	if err != nil {
		return nil, err
	}

	rates, err := order.NewTaxRates(cgst, sgst)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(snapshot.Items))
	for _, dto := range snapshot.Items {
		itemID, itemErr := kernel.UUIDFromString(dto.ID)
		if itemErr != nil {
			return nil, itemErr
		}

		menuItemID, itemErr := kernel.UUIDFromString(dto.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}

		price, itemErr := decimal.NewFromString(dto.Price)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(
			itemID, menuItemID,
			dto.Name, price, dto.Quantity,
			dto.Modifications, dto.Notes, dto.PortionSize,
			dto.AddedAt,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var transferredBy *kernel.UUID
	if snapshot.TransferredBy != nil {
		byID, byErr := kernel.UUIDFromString(*snapshot.TransferredBy)
		if byErr != nil {
			return nil, byErr
		}
		transferredBy = &byID
	}

	return order.RestoreOrder(
		id, locationID, staffID,
		snapshot.OrderNumber,
		orderType,
		orderMode,
		tableIDs,
		snapshot.TableNames,
		items,
		status,
		rates,
		snapshot.SessionStartedAt,
		snapshot.CreatedAt, snapshot.UpdatedAt,
		snapshot.TransferredAt,
		transferredBy,
		snapshot.TransferNotes,
		snapshot.SettledAt,
		snapshot.CancelledAt,
	)
}
