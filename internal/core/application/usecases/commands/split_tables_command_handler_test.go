package commands_test

import (
	"testing"
	"time"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/domain/model/table"
	"dinein/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSplitTablesCommandHandler_Handle_SplitsWholeGroup(t *testing.T) {
	// Arrange
	ctx := t.Context()
	primary := newAvailableTable(t)
	member := newAvailableTable(t)
	require.NoError(t, services.NewTableGroupService().Merge([]*table.Table{primary, member}, time.Now()))

	cmd, err := commands.NewSplitTablesCommand(primary.ID())
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

	handler := commands.NewSplitTablesCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, table.Available, primary.Status())
	assert.Equal(t, table.Available, member.Status())
	assert.Empty(t, primary.MergedWith())
	mockRepo.AssertExpectations(t)
}

func TestSplitTablesCommandHandler_Handle_StandaloneTable(t *testing.T) {
	// A table outside any group just gets released.
	ctx := t.Context()
	tbl := newAvailableTable(t)

	cmd, err := commands.NewSplitTablesCommand(tbl.ID())
	require.NoError(t, err)

	mockRepo := new(MockTableRepository)
	mockUoW := new(MockTableUoW)
	mockFactory := new(MockTableUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("TableRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, tbl.ID()).Return(tbl, nil).Once(),
		mockRepo.On("Update", ctx, tbl).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewSplitTablesCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, table.Available, tbl.Status())
	mockRepo.AssertExpectations(t)
}
