package transferrepo

import (
	"context"
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/transfer"
	"dinein/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPendingTransferRepository implements PendingTransferRepository using GORM.
type GormPendingTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPendingTransferRepository creates a new GORM pending transfer repository.
func NewGormPendingTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormPendingTransferRepository {
	return &GormPendingTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new projection row to the database.
func (r *GormPendingTransferRepository) Add(ctx context.Context, projection *transfer.PendingTransfer) error {
	if err := projection.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(projection)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(projection.OrderID(), projection)
	return nil
}

// Get retrieves the projection for an order.
func (r *GormPendingTransferRepository) Get(
	ctx context.Context, orderID kernel.UUID,
) (*transfer.PendingTransfer, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PendingTransferDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending transfer", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether a projection already exists for the order.
func (r *GormPendingTransferRepository) Exists(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&PendingTransferDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllByLocation retrieves a location's pending projections, newest handoff first.
func (r *GormPendingTransferRepository) GetAllByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*transfer.PendingTransfer, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PendingTransferDTO
	err := r.db.WithContext(ctx).
		Order("transferred_at DESC").
		Find(&dtos, "location_id = ?", locationID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	projections := make([]*transfer.PendingTransfer, 0, len(dtos))
	for _, dto := range dtos {
		projection, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		projections = append(projections, projection)
	}

	return projections, nil
}
