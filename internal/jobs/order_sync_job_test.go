package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderCache struct {
	mock.Mock
}

func (m *mockOrderCache) Put(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *mockOrderCache) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderCache) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrderCache) SetActiveOrder(ctx context.Context, deviceID, orderID kernel.UUID) error {
	args := m.Called(ctx, deviceID, orderID)
	return args.Error(0)
}

func (m *mockOrderCache) ActiveOrder(ctx context.Context, deviceID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *mockOrderCache) ClearActiveOrder(ctx context.Context, deviceID kernel.UUID) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

func (m *mockOrderCache) MarkDirty(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *mockOrderCache) DirtyOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *mockOrderCache) ClearDirty(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *mockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *mockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) GetAllInTransferredStatusByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *mockOrderRepository) GetAllInSettledStatusByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type mockOrderUoW struct {
	mock.Mock
	orderRepo *mockOrderRepository
}

func (m *mockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.orderRepo
}

type stubOrderUoWFactory struct {
	uow *mockOrderUoW
}

func (f stubOrderUoWFactory) Create() commands.OrderUoW {
	return f.uow
}

func newPlacedOrder(t *testing.T) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Filter Coffee",
		decimal.NewFromInt(30), 2, nil, "", "", now,
	)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"ORD-0007", order.DineIn, order.Tableside,
		[]kernel.UUID{kernel.NewUUID()}, []string{"T1"},
		order.DefaultTaxRates(), now,
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.AddItem(item, now))
	require.NoError(t, aggregate.Place(now))

	return aggregate
}

func newSyncJob(cache *mockOrderCache, uow *mockOrderUoW) *OrderSyncJob {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrderSyncJob(cache, stubOrderUoWFactory{uow: uow}, logger)
}

func TestOrderSyncJob_FlushesDirtyOrders(t *testing.T) {
	ctx := context.Background()
	aggregate := newPlacedOrder(t)

	orderRepo := &mockOrderRepository{}
	orderRepo.On("Update", ctx, aggregate).Return(nil)

	uow := &mockOrderUoW{orderRepo: orderRepo}
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	cache := &mockOrderCache{}
	cache.On("DirtyOrderIDs", ctx).Return([]kernel.UUID{aggregate.ID()}, nil)
	cache.On("Get", ctx, aggregate.ID()).Return(aggregate, nil)
	cache.On("ClearDirty", ctx, aggregate.ID()).Return(nil)

	newSyncJob(cache, uow).run(ctx)

	orderRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
	uow.AssertCalled(t, "Commit", ctx)
}

func TestOrderSyncJob_ExpiredSnapshotDropsMark(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	orderRepo := &mockOrderRepository{}
	uow := &mockOrderUoW{orderRepo: orderRepo}

	cache := &mockOrderCache{}
	cache.On("DirtyOrderIDs", ctx).Return([]kernel.UUID{orderID}, nil)
	cache.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String()))
	cache.On("ClearDirty", ctx, orderID).Return(nil)

	newSyncJob(cache, uow).run(ctx)

	cache.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderSyncJob_FailedFlushKeepsMark(t *testing.T) {
	ctx := context.Background()
	broken := newPlacedOrder(t)
	healthy := newPlacedOrder(t)

	orderRepo := &mockOrderRepository{}
	orderRepo.On("Update", ctx, broken).Return(errs.NewValueIsInvalidError("order"))
	orderRepo.On("Update", ctx, healthy).Return(nil)

	uow := &mockOrderUoW{orderRepo: orderRepo}
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	cache := &mockOrderCache{}
	cache.On("DirtyOrderIDs", ctx).Return([]kernel.UUID{broken.ID(), healthy.ID()}, nil)
	cache.On("Get", ctx, broken.ID()).Return(broken, nil)
	cache.On("Get", ctx, healthy.ID()).Return(healthy, nil)
	cache.On("ClearDirty", ctx, healthy.ID()).Return(nil)

	newSyncJob(cache, uow).run(ctx)

	cache.AssertExpectations(t)
	cache.AssertNotCalled(t, "ClearDirty", ctx, broken.ID())
}
