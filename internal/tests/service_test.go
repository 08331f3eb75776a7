package tests

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
	"github.com/ViktorDebugger/DeliFood-server/internal/mocks"
	"github.com/ViktorDebugger/DeliFood-server/internal/service"
)

func TestOrderService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		order  *domain.Order
	}{
		{
			name:   "missing user",
			userID: "",
			order:  &domain.Order{Items: []domain.OrderItem{{DishID: "d1"}}},
		},
		{
			name:   "nil order",
			userID: "user-1",
			order:  nil,
		},
		{
			name:   "no items",
			userID: "user-1",
			order:  &domain.Order{Items: []domain.OrderItem{}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			svc := service.NewOrderService(mockRepo, nil, nil)

			_, err := svc.Create(context.Background(), testCase.userID, testCase.order)

			assert.ErrorIs(t, err, service.ErrInvalidOrder)
			mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CreateSuccess(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockQR := new(mocks.QRGenerator)
	mockPublisher := new(mocks.OrderEventPublisher)
	svc := service.NewOrderService(mockRepo, mockQR, mockPublisher)

	order := &domain.Order{
		TotalPrice: 25.5,
		TotalCount: 2,
		Items: []domain.OrderItem{
			{DishID: "d1", Name: "Borsch", Price: 10.5, Quantity: 1},
			{DishID: "d2", Name: "Varenyky", Price: 7.5, Quantity: 2},
		},
	}

	mockRepo.On("CreateOrder", mock.Anything, order).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = "order-123"
	}).Return(nil).Once()
	mockQR.On("Generate", "order-123").Return([]byte{0x89, 0x50}, nil).Once()
	mockRepo.On("SaveQRCode", mock.Anything, "order-123", mock.Anything).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated && e.OrderID == "order-123" && e.UserID == "user-1"
	})).Return(nil).Once()

	orderID, err := svc.Create(context.Background(), "user-1", order)

	assert.NoError(t, err)
	assert.Equal(t, "order-123", orderID)
	assert.Equal(t, "user-1", order.UserID)
	mockRepo.AssertExpectations(t)
	mockQR.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_CreateRepositoryError(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockQR := new(mocks.QRGenerator)
	svc := service.NewOrderService(mockRepo, mockQR, nil)

	order := &domain.Order{Items: []domain.OrderItem{{DishID: "d1"}}}
	mockRepo.On("CreateOrder", mock.Anything, order).Return(assert.AnError).Once()

	_, err := svc.Create(context.Background(), "user-1", order)

	assert.Error(t, err)
	mockQR.AssertNotCalled(t, "Generate", mock.Anything)
	mockRepo.AssertNotCalled(t, "SaveQRCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_ListForUserEmpty(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, nil, nil)

	mockRepo.On("ListOrdersByUser", mock.Anything, "user-1").Return([]domain.Order{}, nil).Once()

	orders, err := svc.ListForUser(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	mockRepo.AssertNotCalled(t, "ListOrderItems", mock.Anything, mock.Anything)
}

func TestOrderService_ListForUserHydratesInOrder(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, nil, nil)

	headers := []domain.Order{
		{ID: "order-a", UserID: "user-1"},
		{ID: "order-b", UserID: "user-1"},
		{ID: "order-c", UserID: "user-1"},
	}
	mockRepo.On("ListOrdersByUser", mock.Anything, "user-1").Return(headers, nil).Once()
	mockRepo.On("ListOrderItems", mock.Anything, "order-a").
		Return([]domain.OrderItem{{DishID: "d1"}}, nil).Once()
	mockRepo.On("ListOrderItems", mock.Anything, "order-b").
		Return([]domain.OrderItem{{DishID: "d2"}, {DishID: "d3"}}, nil).Once()
	mockRepo.On("ListOrderItems", mock.Anything, "order-c").
		Return([]domain.OrderItem{}, nil).Once()

	orders, err := svc.ListForUser(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	// sequence must follow the header query, not fan-out completion
	assert.Equal(t, "order-a", orders[0].ID)
	assert.Equal(t, "order-b", orders[1].ID)
	assert.Equal(t, "order-c", orders[2].ID)
	assert.Len(t, orders[0].Items, 1)
	assert.Len(t, orders[1].Items, 2)
	assert.Empty(t, orders[2].Items)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_ListForUserItemFetchError(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, nil, nil)

	headers := []domain.Order{{ID: "order-a"}, {ID: "order-b"}}
	mockRepo.On("ListOrdersByUser", mock.Anything, "user-1").Return(headers, nil).Once()
	mockRepo.On("ListOrderItems", mock.Anything, "order-a").
		Return([]domain.OrderItem{{DishID: "d1"}}, nil).Once()
	mockRepo.On("ListOrderItems", mock.Anything, "order-b").
		Return(nil, assert.AnError).Once()

	_, err := svc.ListForUser(context.Background(), "user-1")

	assert.Error(t, err)
}

func TestOrderService_RateItem(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockPublisher := new(mocks.OrderEventPublisher)
	svc := service.NewOrderService(mockRepo, nil, mockPublisher)

	mockRepo.On("FindOrderItem", mock.Anything, "order-1", "dish-1").Return(int64(7), nil).Once()
	mockRepo.On("UpdateItemGrade", mock.Anything, int64(7), 5).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventItemGraded && e.DishID == "dish-1" && e.Grade != nil && *e.Grade == 5
	})).Return(nil).Once()

	err := svc.RateItem(context.Background(), "order-1", "dish-1", 5)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_RateItemOverwrites(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, nil, nil)

	mockRepo.On("FindOrderItem", mock.Anything, "order-1", "dish-1").Return(int64(7), nil).Twice()
	mockRepo.On("UpdateItemGrade", mock.Anything, int64(7), 3).Return(nil).Once()
	mockRepo.On("UpdateItemGrade", mock.Anything, int64(7), 5).Return(nil).Once()

	assert.NoError(t, svc.RateItem(context.Background(), "order-1", "dish-1", 3))
	assert.NoError(t, svc.RateItem(context.Background(), "order-1", "dish-1", 5))
	mockRepo.AssertExpectations(t)
}

func TestOrderService_RateItemNotFound(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, nil, nil)

	mockRepo.On("FindOrderItem", mock.Anything, "order-1", "dish-x").
		Return(int64(0), sql.ErrNoRows).Once()

	err := svc.RateItem(context.Background(), "order-1", "dish-x", 4)

	assert.ErrorIs(t, err, service.ErrItemNotFound)
	mockRepo.AssertNotCalled(t, "UpdateItemGrade", mock.Anything, mock.Anything, mock.Anything)
}

func TestDishService_ListNormalizesPrices(t *testing.T) {
	mockRepo := new(mocks.DishRepository)
	svc := service.NewDishService(mockRepo, nil)

	mockRepo.On("ListDishes", mock.Anything).Return([]domain.Dish{
		{ID: "d1", Details: map[string]interface{}{"name": "Borsch", "price": "12.50"}},
		{ID: "d2", Details: map[string]interface{}{"name": "Syrnyky", "price": 8.0}},
	}, nil).Once()

	dishes, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, dishes, 2)
	assert.Equal(t, 12.5, dishes[0].Price)
	assert.Equal(t, "Borsch", dishes[0].Name)
	assert.Equal(t, 8.0, dishes[1].Price)
}

func TestDishService_ListEmptyCatalog(t *testing.T) {
	mockRepo := new(mocks.DishRepository)
	svc := service.NewDishService(mockRepo, nil)

	mockRepo.On("ListDishes", mock.Anything).Return([]domain.Dish{}, nil).Once()

	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, service.ErrNoDishes)
}

func TestDishService_ListCacheHitSkipsRepository(t *testing.T) {
	mockRepo := new(mocks.DishRepository)
	mockCache := new(mocks.DishCache)
	svc := service.NewDishService(mockRepo, mockCache)

	cached := []domain.Dish{{ID: "d1", Name: "Borsch", Price: 12.5}}
	mockCache.On("Get", mock.Anything).Return(cached, true, nil).Once()

	dishes, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, dishes)
	mockRepo.AssertNotCalled(t, "ListDishes", mock.Anything)
}

func TestDishService_ListCacheMissFillsCache(t *testing.T) {
	mockRepo := new(mocks.DishRepository)
	mockCache := new(mocks.DishCache)
	svc := service.NewDishService(mockRepo, mockCache)

	mockCache.On("Get", mock.Anything).Return(nil, false, nil).Once()
	mockRepo.On("ListDishes", mock.Anything).Return([]domain.Dish{
		{ID: "d1", Details: map[string]interface{}{"name": "Borsch", "price": "12.50"}},
	}, nil).Once()
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil).Once()

	dishes, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, dishes, 1)
	mockCache.AssertExpectations(t)
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"string decimal", "12.50", 12.5},
		{"float", 9.99, 9.99},
		{"int", 7, 7},
		{"garbage string", "free", 0},
		{"nil", nil, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.NormalizePrice(testCase.input))
		})
	}
}
