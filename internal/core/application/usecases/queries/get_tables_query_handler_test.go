package queries_test

import (
	"context"
	"testing"
	"time"

	"dinein/internal/adapters/out/postgres/tablerepo"
	"dinein/internal/core/application/usecases/queries"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' aggregate tracker without
// recording anything; query tests only need seeded rows.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetTablesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetTablesQueryHandler
}

func (suite *GetTablesQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&tablerepo.TableDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetTablesQueryHandler(db)
}

func (suite *GetTablesQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tables").Error)
}

func (suite *GetTablesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetTablesQueryHandlerTestSuite) seedTable(aggregate *table.Table) {
	repo := tablerepo.NewGormTableRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
}

func (suite *GetTablesQueryHandlerTestSuite) TestHandle_EmptyLocation_ReturnsEmptySlice() {
	query, err := queries.NewGetTablesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	tables, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(tables)
}

func (suite *GetTablesQueryHandlerTestSuite) TestHandle_ReturnsFloorViewSortedByName() {
	locationID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	available, err := table.NewTable(kernel.NewUUID(), locationID, "T2", 4)
	suite.Require().NoError(err)
	suite.seedTable(available)

	reserved, err := table.NewTable(kernel.NewUUID(), locationID, "T1", 2)
	suite.Require().NoError(err)
	suite.Require().NoError(reserved.Reserve(kernel.NewUUID(), "Asha", "", "", now))
	suite.seedTable(reserved)

	occupied, err := table.NewTable(kernel.NewUUID(), locationID, "T3", 6)
	suite.Require().NoError(err)
	orderID := kernel.NewUUID()
	suite.Require().NoError(occupied.Occupy(orderID, now))
	suite.seedTable(occupied)

	elsewhere, err := table.NewTable(kernel.NewUUID(), kernel.NewUUID(), "T1", 4)
	suite.Require().NoError(err)
	suite.seedTable(elsewhere)

	query, err := queries.NewGetTablesQuery(locationID)
	suite.Require().NoError(err)

	tables, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(tables, 3)

	suite.Equal("T1", tables[0].Name)
	suite.Equal("Reserved", tables[0].Status)
	suite.Equal("Asha", tables[0].CustomerName)
	suite.Require().NotNil(tables[0].ReservedUntil)
	suite.WithinDuration(now.Add(table.ReservationWindow), *tables[0].ReservedUntil, time.Millisecond)

	suite.Equal("T2", tables[1].Name)
	suite.Equal("Available", tables[1].Status)
	suite.Nil(tables[1].CurrentOrderID)

	suite.Equal("T3", tables[2].Name)
	suite.Equal("Occupied", tables[2].Status)
	suite.Require().NotNil(tables[2].CurrentOrderID)
	suite.Equal(orderID, *tables[2].CurrentOrderID)
}

func (suite *GetTablesQueryHandlerTestSuite) TestHandle_MergeGroupMembersOnPrimary() {
	locationID := kernel.NewUUID()

	primary, err := table.NewTable(kernel.NewUUID(), locationID, "T1", 4)
	suite.Require().NoError(err)
	memberIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	suite.Require().NoError(primary.MergeAsPrimary(memberIDs, time.Now().UTC()))
	suite.seedTable(primary)

	query, err := queries.NewGetTablesQuery(locationID)
	suite.Require().NoError(err)

	tables, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(tables, 1)
	suite.Equal(memberIDs, tables[0].MergedWith)
}

func TestGetTablesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetTablesQueryHandlerTestSuite))
}
