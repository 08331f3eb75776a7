package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

var (
	ErrInvalidOrder  = errors.New("missing user or order payload")
	ErrItemNotFound  = errors.New("dish not found in order")
	ErrOrderNotFound = errors.New("order not found")
)

// maxItemFetchers caps how many per-order item reads run at once when
// hydrating a user's order list.
const maxItemFetchers = 8

type OrderService struct {
	repo      OrderRepository
	qrEncoder QRGenerator
	publisher OrderEventPublisher
}

func NewOrderService(repo OrderRepository, qr QRGenerator, publisher OrderEventPublisher) *OrderService {
	return &OrderService{repo: repo, qrEncoder: qr, publisher: publisher}
}

// Create writes the order header and its item batch in one transaction and
// returns the generated order id. The QR code and the lifecycle event are
// best-effort: their failure never fails the order.
func (s *OrderService) Create(ctx context.Context, userID string, order *domain.Order) (string, error) {
	if userID == "" || order == nil || len(order.Items) == 0 {
		return "", ErrInvalidOrder
	}
	order.UserID = userID

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return "", err
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.repo.SaveQRCode(ctx, order.ID, qr)
		}
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:      domain.EventOrderCreated,
			OrderID:   order.ID,
			UserID:    userID,
			Timestamp: time.Now(),
		})
	}

	return order.ID, nil
}

// ListForUser returns the user's orders with their items hydrated. Item reads
// fan out concurrently, at most maxItemFetchers at a time, and results keep
// the position of the original header query. A user with no orders gets an
// empty slice, not an error.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	var (
		wg       sync.WaitGroup
		sem      = make(chan struct{}, maxItemFetchers)
		mu       sync.Mutex
		firstErr error
	)

	for i := range orders {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			items, err := s.repo.ListOrderItems(ctx, orders[i].ID)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			orders[i].Items = items
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return orders, nil
}

// RateItem overwrites the grade of the first item in the order whose dish
// reference matches dishID. Repeated ratings replace the previous grade.
func (s *OrderService) RateItem(ctx context.Context, orderID, dishID string, grade int) error {
	itemID, err := s.repo.FindOrderItem(ctx, orderID, dishID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	if err := s.repo.UpdateItemGrade(ctx, itemID, grade); err != nil {
		return err
	}

	if s.publisher != nil {
		g := grade
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:      domain.EventItemGraded,
			OrderID:   orderID,
			DishID:    dishID,
			Grade:     &g,
			Timestamp: time.Now(),
		})
	}

	return nil
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repo.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
