// Package tablerepo provides data transfer objects and mapping functions for table persistence.
// This package implements the repository pattern for the table domain aggregate, handling
// the conversion between domain entities and database representations.
package tablerepo

import (
	"encoding/json"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO represents the database structure for persisting table aggregates.
// Occupancy, reservation and merge-group state live on the same row; the
// merge member list is a JSONB array of uuid strings carried only by the
// primary table of a group.
type TableDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	LocationID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Capacity       int            `gorm:"type:int;not null"`
	Status         int            `gorm:"type:int;not null;index"`
	CurrentOrderID *uuid.UUID     `gorm:"type:uuid;index"`
	OccupiedAt     *time.Time
	Reservation    ReservationDTO `gorm:"embedded;embeddedPrefix:reservation_"`
	MergedWith     []byte         `gorm:"type:jsonb"`
}

// TableName specifies the database table name for table entities.
// Overrides GORM's default naming convention to use "tables".
func (TableDTO) TableName() string {
	return "tables"
}

// ReservationDTO represents the embedded reservation columns within the
// tables table. A nil ReservedBy means the row carries no reservation.
type ReservationDTO struct {
	ReservedBy    *uuid.UUID `gorm:"type:uuid"`
	CustomerName  string     `gorm:"type:varchar(255)"`
	CustomerPhone string     `gorm:"type:varchar(32)"`
	Notes         string     `gorm:"type:text"`
	ReservedAt    *time.Time
	ExpiresAt     *time.Time
}

// fromDomain converts a table domain aggregate to its database representation.
func fromDomain(aggregate *table.Table) (TableDTO, error) {
	dto := TableDTO{
		ID:         aggregate.ID().Bytes(),
		LocationID: aggregate.LocationID().Bytes(),
		Name:       aggregate.Name(),
		Capacity:   aggregate.Capacity(),
		Status:     int(aggregate.Status()),
		OccupiedAt: aggregate.OccupiedAt(),
	}

	if orderID := aggregate.CurrentOrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.CurrentOrderID = &raw
	}

	if reservation := aggregate.Reservation(); reservation != nil {
		reservedBy := reservation.ReservedBy().Bytes()
		reservedAt := reservation.ReservedAt()
		expiresAt := reservation.ExpiresAt()
		dto.Reservation = ReservationDTO{
			ReservedBy:    &reservedBy,
			CustomerName:  reservation.CustomerName(),
			CustomerPhone: reservation.CustomerPhone(),
			Notes:         reservation.Notes(),
			ReservedAt:    &reservedAt,
			ExpiresAt:     &expiresAt,
		}
	}

	if members := aggregate.MergedWith(); len(members) > 0 {
		raw, err := json.Marshal(kernel.UUIDsToStrings(members))
		if err != nil {
			return TableDTO{}, err
		}
		dto.MergedWith = raw
	}

	return dto, nil
}

// toDomain converts a database DTO to a table domain aggregate.
// Reconstructs the complete aggregate including reservation and merge
// membership using RestoreTable.
func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &orderID
	}

	var reservation *table.Reservation
	if dto.Reservation.ReservedBy != nil {
		reservedBy, byErr := kernel.UUIDFromBytes((*dto.Reservation.ReservedBy)[:])
		if byErr != nil {
			return nil, byErr
		}

		restored, resErr := table.RestoreReservation(
			reservedBy,
			dto.Reservation.CustomerName,
			dto.Reservation.CustomerPhone,
			dto.Reservation.Notes,
			*dto.Reservation.ReservedAt,
			*dto.Reservation.ExpiresAt,
		)
		if resErr != nil {
			return nil, resErr
		}
		reservation = &restored
	}

	var mergedWith []kernel.UUID
	if len(dto.MergedWith) > 0 {
		var memberStrings []string
		if jsonErr := json.Unmarshal(dto.MergedWith, &memberStrings); jsonErr != nil {
			return nil, jsonErr
		}

		mergedWith, err = kernel.UUIDsFromStrings(memberStrings)
		if err != nil {
			return nil, err
		}
	}

	return table.RestoreTable(
		id, locationID,
		dto.Name,
		dto.Capacity,
		table.Status(dto.Status),
		currentOrderID,
		dto.OccupiedAt,
		reservation,
		mergedWith,
	)
}
