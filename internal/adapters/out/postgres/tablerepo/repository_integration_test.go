package tablerepo_test

import (
	"context"
	"testing"
	"time"

	"dinein/internal/adapters/out/postgres/tablerepo"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"
	"dinein/internal/pkg/errs"

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

// TableRepositoryIntegrationTestSuite provides integration tests for TableRepository
// using PostgreSQL containers to verify database persistence behavior.
type TableRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *tablerepo.GormTableRepository
	tracker    *MockAggregateTracker
}

func (suite *TableRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&tablerepo.TableDTO{}))
}

func (suite *TableRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tables").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = tablerepo.NewGormTableRepository(suite.db, suite.tracker)
}

func (suite *TableRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TableRepositoryIntegrationTestSuite) createTestTable(locationID kernel.UUID, name string) *table.Table {
	aggregate, err := table.NewTable(kernel.NewUUID(), locationID, name, 4)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *TableRepositoryIntegrationTestSuite) TestAdd_ValidTable_Success() {
	ctx := context.Background()

	aggregate := suite.createTestTable(kernel.NewUUID(), "T1")

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&tablerepo.TableDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *TableRepositoryIntegrationTestSuite) TestGet_NonExistentTable_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *TableRepositoryIntegrationTestSuite) TestGet_ReservationRoundTrip() {
	ctx := context.Background()

	aggregate := suite.createTestTable(kernel.NewUUID(), "T2")
	reservedBy := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.Reserve(reservedBy, "Asha", "+91-98450-00000", "window seat", now))

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(table.Reserved, retrieved.Status())
	suite.Require().NotNil(retrieved.Reservation())
	suite.Equal(reservedBy, retrieved.Reservation().ReservedBy())
	suite.Equal("Asha", retrieved.Reservation().CustomerName())
	suite.Equal("+91-98450-00000", retrieved.Reservation().CustomerPhone())
	suite.Equal("window seat", retrieved.Reservation().Notes())
	suite.WithinDuration(now.Add(table.ReservationWindow), retrieved.Reservation().ExpiresAt(), time.Millisecond)
}

func (suite *TableRepositoryIntegrationTestSuite) TestUpdate_ReleaseClearsOccupancyColumns() {
	ctx := context.Background()

	aggregate := suite.createTestTable(kernel.NewUUID(), "T3")
	suite.Require().NoError(aggregate.Occupy(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	aggregate.Release()
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(table.Available, retrieved.Status())
	suite.Nil(retrieved.CurrentOrderID())
	suite.Nil(retrieved.OccupiedAt())
}

func (suite *TableRepositoryIntegrationTestSuite) TestUpdate_MergeGroupRoundTrip() {
	ctx := context.Background()

	locationID := kernel.NewUUID()
	primary := suite.createTestTable(locationID, "T4")
	memberIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	suite.Require().NoError(primary.MergeAsPrimary(memberIDs, time.Now().UTC()))

	suite.Require().NoError(suite.repository.Add(ctx, primary))

	retrieved, err := suite.repository.Get(ctx, primary.ID())
	suite.Require().NoError(err)
	suite.Equal(table.Occupied, retrieved.Status())
	suite.Equal(memberIDs, retrieved.MergedWith())
}

func (suite *TableRepositoryIntegrationTestSuite) TestUpdate_NonExistentTable_ReturnsError() {
	ctx := context.Background()

	aggregate := suite.createTestTable(kernel.NewUUID(), "T5")

	err := suite.repository.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TableRepositoryIntegrationTestSuite) TestGetAllByLocation_SortsByName() {
	ctx := context.Background()

	locationID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestTable(locationID, "T9")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestTable(locationID, "T1")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestTable(kernel.NewUUID(), "T5")))

	tables, err := suite.repository.GetAllByLocation(ctx, locationID)
	suite.Require().NoError(err)

	suite.Require().Len(tables, 2)
	suite.Equal("T1", tables[0].Name())
	suite.Equal("T9", tables[1].Name())
}

func (suite *TableRepositoryIntegrationTestSuite) TestGetAllInReservedStatus_FiltersByStatus() {
	ctx := context.Background()

	reserved := suite.createTestTable(kernel.NewUUID(), "T6")
	suite.Require().NoError(reserved.Reserve(kernel.NewUUID(), "Ravi", "", "", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, reserved))

	available := suite.createTestTable(kernel.NewUUID(), "T7")
	suite.Require().NoError(suite.repository.Add(ctx, available))

	tables, err := suite.repository.GetAllInReservedStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(tables, 1)
	suite.Equal(reserved.ID(), tables[0].ID())
}

func TestTableRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TableRepositoryIntegrationTestSuite))
}
