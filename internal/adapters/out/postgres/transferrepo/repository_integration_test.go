package transferrepo_test

import (
	"context"
	"testing"
	"time"

	"dinein/internal/adapters/out/postgres/transferrepo"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/domain/model/transfer"
	"dinein/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// PendingTransferRepositoryIntegrationTestSuite provides integration tests for
// the transfer projection using PostgreSQL containers.
type PendingTransferRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *transferrepo.GormPendingTransferRepository
	tracker    *MockAggregateTracker
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&transferrepo.PendingTransferDTO{}))
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pending_transfers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = transferrepo.NewGormPendingTransferRepository(suite.db, suite.tracker)
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) createProjection(
	locationID kernel.UUID, transferredAt time.Time,
) *transfer.PendingTransfer {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), locationID, kernel.NewUUID(),
		"ORD-0042", order.DineIn, order.Tableside,
		[]kernel.UUID{kernel.NewUUID()}, []string{"T1"},
		order.DefaultTaxRates(), transferredAt,
	)
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(),
		"Filter Coffee", decimal.NewFromInt(40), 2,
		nil, "", "full",
		transferredAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(item, transferredAt))
	suite.Require().NoError(aggregate.Place(transferredAt))
	suite.Require().NoError(aggregate.TransferToManager(kernel.NewUUID(), "regular customer", transferredAt))

	projection, err := transfer.NewPendingTransferFromOrder(aggregate)
	suite.Require().NoError(err)
	return projection
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	transferredAt := time.Now().UTC().Truncate(time.Microsecond)

	projection := suite.createProjection(kernel.NewUUID(), transferredAt)
	suite.Require().NoError(suite.repository.Add(ctx, projection))

	retrieved, err := suite.repository.Get(ctx, projection.OrderID())
	suite.Require().NoError(err)

	suite.Equal(projection.OrderID(), retrieved.OrderID())
	suite.Equal(projection.LocationID(), retrieved.LocationID())
	suite.Equal("ORD-0042", retrieved.OrderNumber())
	suite.Equal(order.DineIn, retrieved.OrderType())
	suite.Equal(projection.TableIDs(), retrieved.TableIDs())
	suite.Equal([]string{"T1"}, retrieved.TableNames())
	suite.Equal("regular customer", retrieved.TransferNotes())
	suite.Equal(projection.TransferredBy(), retrieved.TransferredBy())
	suite.WithinDuration(transferredAt, retrieved.TransferredAt(), time.Millisecond)

	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal("Filter Coffee", retrieved.Items()[0].Name())
	suite.Equal(2, retrieved.Items()[0].Quantity())

	// Totals were frozen at handoff, not recomputed.
	suite.Equal("84", retrieved.Totals().Total.String())
	suite.Equal("80", retrieved.Totals().Subtotal.String())
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) TestGet_NonExistentProjection_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) TestExists_ReportsPresence() {
	ctx := context.Background()

	projection := suite.createProjection(kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, projection))

	exists, err := suite.repository.Exists(ctx, projection.OrderID())
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.Exists(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *PendingTransferRepositoryIntegrationTestSuite) TestGetAllByLocation_NewestHandoffFirst() {
	ctx := context.Background()
	locationID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	earlier := suite.createProjection(locationID, base.Add(-time.Hour))
	later := suite.createProjection(locationID, base)
	elsewhere := suite.createProjection(kernel.NewUUID(), base)

	suite.Require().NoError(suite.repository.Add(ctx, earlier))
	suite.Require().NoError(suite.repository.Add(ctx, later))
	suite.Require().NoError(suite.repository.Add(ctx, elsewhere))

	projections, err := suite.repository.GetAllByLocation(ctx, locationID)
	suite.Require().NoError(err)

	suite.Require().Len(projections, 2)
	suite.Equal(later.OrderID(), projections[0].OrderID())
	suite.Equal(earlier.OrderID(), projections[1].OrderID())
}

func TestPendingTransferRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PendingTransferRepositoryIntegrationTestSuite))
}
