package commands_test

import (
	"testing"
	"time"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMergeTablesCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	primary := newAvailableTable(t)
	member := newAvailableTable(t)

	cmd, err := commands.NewMergeTablesCommand([]kernel.UUID{primary.ID(), member.ID()})
	require.NoError(t, err)

	mockRepo := new(MockTableRepository)
	mockUoW := new(MockTableUoW)
	mockFactory := new(MockTableUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("TableRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, primary.ID()).Return(primary, nil).Once(),
		mockRepo.On("Get", ctx, member.ID()).Return(member, nil).Once(),
		mockRepo.On("Update", ctx, primary).Return(nil).Once(),
		mockRepo.On("Update", ctx, member).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewMergeTablesCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, table.Occupied, primary.Status())
	assert.Equal(t, table.Occupied, member.Status())
	assert.Equal(t, []kernel.UUID{member.ID()}, primary.MergedWith())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestMergeTablesCommandHandler_Handle_OccupiedMemberFailsWholeMerge(t *testing.T) {
	// Arrange
	ctx := t.Context()
	primary := newAvailableTable(t)
	member := newAvailableTable(t)
	require.NoError(t, member.Occupy(kernel.NewUUID(), time.Now()))

	cmd, err := commands.NewMergeTablesCommand([]kernel.UUID{primary.ID(), member.ID()})
	require.NoError(t, err)

	mockRepo := new(MockTableRepository)
	mockUoW := new(MockTableUoW)
	mockFactory := new(MockTableUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("TableRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, primary.ID()).Return(primary, nil).Once(),
		mockRepo.On("Get", ctx, member.ID()).Return(member, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewMergeTablesCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, table.ErrTableAlreadyOccupied)
	// No Update calls: the merge fails before any table is persisted.
	assert.Equal(t, table.Available, primary.Status())
	mockRepo.AssertExpectations(t)
}
