package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

type OrderEventPublisher struct {
	mock.Mock
}

func (m *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
