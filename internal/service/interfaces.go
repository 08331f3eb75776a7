package service

import (
	"context"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

type DishRepository interface {
	ListDishes(ctx context.Context) ([]domain.Dish, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	FindOrderItem(ctx context.Context, orderID, dishID string) (int64, error)
	UpdateItemGrade(ctx context.Context, itemID int64, grade int) error
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type DishCache interface {
	Get(ctx context.Context) ([]domain.Dish, bool, error)
	Set(ctx context.Context, dishes []domain.Dish) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type DishServiceInterface interface {
	List(ctx context.Context) ([]domain.Dish, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, userID string, order *domain.Order) (string, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	RateItem(ctx context.Context, orderID, dishID string, grade int) error
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, password string) (string, *domain.Account, error)
	LogIn(ctx context.Context, email, password string) (string, *domain.Account, error)
	LogOut(ctx context.Context, uid string) error
	Account(ctx context.Context, uid string) (*domain.Account, error)
}
