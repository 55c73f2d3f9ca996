package commands_test

import (
	"context"
	"errors"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInTransferredStatusByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInSettledStatusByLocation(
	ctx context.Context, locationID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct {
	mock.Mock
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderCache struct {
	mock.Mock
}

func (m *MockOrderCache) Put(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderCache) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderCache) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderCache) SetActiveOrder(ctx context.Context, deviceID, orderID kernel.UUID) error {
	args := m.Called(ctx, deviceID, orderID)
	return args.Error(0)
}

func (m *MockOrderCache) ActiveOrder(ctx context.Context, deviceID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, deviceID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockOrderCache) ClearActiveOrder(ctx context.Context, deviceID kernel.UUID) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

func (m *MockOrderCache) MarkDirty(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderCache) DirtyOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockOrderCache) ClearDirty(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockMenuCatalog struct {
	mock.Mock
}

func (m *MockMenuCatalog) Lookup(ctx context.Context, menuItemID kernel.UUID) (ports.MenuItem, error) {
	args := m.Called(ctx, menuItemID)
	return args.Get(0).(ports.MenuItem), args.Error(1)
}

type MockTaxRateSource struct {
	mock.Mock
}

func (m *MockTaxRateSource) RatesForLocation(ctx context.Context, locationID kernel.UUID) (order.TaxRates, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(order.TaxRates), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTemporaryOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"ORD-0042", order.DineIn, order.Tableside,
		[]kernel.UUID{kernel.NewUUID()}, []string{"T1"},
		order.DefaultTaxRates(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func newOngoingOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate := newTemporaryOrder(t)
	require.NoError(t, aggregate.Place(time.Now().UTC()))
	return aggregate
}

func idliMenuItem() ports.MenuItem {
	return ports.MenuItem{
		ID:    kernel.NewUUID(),
		Name:  "Idli",
		Price: decimal.NewFromInt(40),
	}
}

func TestAddOrderItemCommandHandler_Handle_OngoingOrderWritesThrough(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newOngoingOrder(t)
	menuItem := idliMenuItem()

	cmd, err := commands.NewAddOrderItemCommand(aggregate.ID(), menuItem.ID, 2, nil, "", "")
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockCache := new(MockOrderCache)
	mockCatalog := new(MockMenuCatalog)

	mockCatalog.On("Lookup", ctx, menuItem.ID).Return(menuItem, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo)
	mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockCache.On("Put", ctx, aggregate).Return(nil).Once()
	mockRepo.On("Update", ctx, aggregate).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(mockFactory, mockCache, mockCatalog, testLogger())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.Len(t, aggregate.Items(), 1)
	assert.Equal(t, "Idli", aggregate.Items()[0].Name())
	assert.Equal(t, 2, aggregate.Items()[0].Quantity())
	assert.Equal(t, "84", aggregate.Totals().Total.String())
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_TemporaryOrderStaysCacheOnly(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newTemporaryOrder(t)
	menuItem := idliMenuItem()

	cmd, err := commands.NewAddOrderItemCommand(aggregate.ID(), menuItem.ID, 1, nil, "", "")
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockCache := new(MockOrderCache)
	mockCatalog := new(MockMenuCatalog)

	notFound := errs.NewObjectNotFoundError("order", aggregate.ID().String())
	mockCatalog.On("Lookup", ctx, menuItem.ID).Return(menuItem, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo)
	mockRepo.On("Get", ctx, aggregate.ID()).Return(nil, notFound).Once()
	mockCache.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockCache.On("Put", ctx, aggregate).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(mockFactory, mockCache, mockCatalog, testLogger())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.Len(t, aggregate.Items(), 1)
	// No durable Update and no Commit: nothing durable exists yet.
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_DurableFailureFallsBackToDirtyMark(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newOngoingOrder(t)
	menuItem := idliMenuItem()

	cmd, err := commands.NewAddOrderItemCommand(aggregate.ID(), menuItem.ID, 1, nil, "", "")
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockCache := new(MockOrderCache)
	mockCatalog := new(MockMenuCatalog)

	mockCatalog.On("Lookup", ctx, menuItem.ID).Return(menuItem, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo)
	mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockCache.On("Put", ctx, aggregate).Return(nil).Once()
	mockRepo.On("Update", ctx, aggregate).Return(errors.New("connection refused")).Once()
	mockCache.On("MarkDirty", ctx, aggregate.ID()).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(mockFactory, mockCache, mockCatalog, testLogger())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	// The edit succeeds: cache holds it, the sync job owns the catch-up.
	require.NoError(t, err)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_UnknownMenuItem(t *testing.T) {
	// Arrange
	ctx := t.Context()
	menuItemID := kernel.NewUUID()

	cmd, err := commands.NewAddOrderItemCommand(kernel.NewUUID(), menuItemID, 1, nil, "", "")
	require.NoError(t, err)

	mockFactory := new(MockOrderUoWFactory)
	mockCache := new(MockOrderCache)
	mockCatalog := new(MockMenuCatalog)

	notFound := errs.NewObjectNotFoundError("menu item", menuItemID.String())
	mockCatalog.On("Lookup", ctx, menuItemID).Return(ports.MenuItem{}, notFound).Once()

	handler := commands.NewAddOrderItemCommandHandler(mockFactory, mockCache, mockCatalog, testLogger())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestAddOrderItemCommandHandler_Handle_TransferredOrderRejected(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newOngoingOrder(t)
	require.NoError(t, aggregate.TransferToManager(kernel.NewUUID(), "", time.Now().UTC()))
	menuItem := idliMenuItem()

	cmd, err := commands.NewAddOrderItemCommand(aggregate.ID(), menuItem.ID, 1, nil, "", "")
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockCache := new(MockOrderCache)
	mockCatalog := new(MockMenuCatalog)

	mockCatalog.On("Lookup", ctx, menuItem.ID).Return(menuItem, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockRepo)
	mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(mockFactory, mockCache, mockCatalog, testLogger())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, order.ErrOrderNotEditable)
	mockCache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
