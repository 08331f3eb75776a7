package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

type DishRepository struct {
	mock.Mock
}

func (m *DishRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dish), args.Error(1)
}

type DishCache struct {
	mock.Mock
}

func (m *DishCache) Get(ctx context.Context) ([]domain.Dish, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Dish), args.Bool(1), args.Error(2)
}

func (m *DishCache) Set(ctx context.Context, dishes []domain.Dish) error {
	args := m.Called(ctx, dishes)
	return args.Error(0)
}
