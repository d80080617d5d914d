package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type mockGameManager struct {
	mock.Mock
}

func (m *mockGameManager) NewGame(ctx context.Context, dimension int, contents string, players *entity.Players) (*usecase.Outcome, error) {
	args := m.Called(ctx, dimension, contents, players)

	outcome, _ := args.Get(0).(*usecase.Outcome)

	return outcome, args.Error(1)
}

func (m *mockGameManager) MakeMove(ctx context.Context, gameID string, row, column int) (*usecase.Outcome, error) {
	args := m.Called(ctx, gameID, row, column)

	outcome, _ := args.Get(0).(*usecase.Outcome)

	return outcome, args.Error(1)
}

func (m *mockGameManager) GetGame(ctx context.Context, gameID string) (*usecase.Outcome, error) {
	args := m.Called(ctx, gameID)

	outcome, _ := args.Get(0).(*usecase.Outcome)

	return outcome, args.Error(1)
}

func (m *mockGameManager) UpdatePlayers(ctx context.Context, gameID string, players entity.Players) (*usecase.Outcome, error) {
	args := m.Called(ctx, gameID, players)

	outcome, _ := args.Get(0).(*usecase.Outcome)

	return outcome, args.Error(1)
}

func (m *mockGameManager) DeleteGame(ctx context.Context, gameID string) error {
	return m.Called(ctx, gameID).Error(0)
}
