package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	args := m.Called(ctx, orderID, qr)
	return args.Error(0)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *OrderRepository) FindOrderItem(ctx context.Context, orderID, dishID string) (int64, error) {
	args := m.Called(ctx, orderID, dishID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) UpdateItemGrade(ctx context.Context, itemID int64, grade int) error {
	args := m.Called(ctx, itemID, grade)
	return args.Error(0)
}

func (m *OrderRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
