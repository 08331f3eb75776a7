package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

var ErrNoDishes = errors.New("dish catalog is empty")

type DishService struct {
	repo  DishRepository
	cache DishCache
}

func NewDishService(repo DishRepository, cache DishCache) *DishService {
	return &DishService{repo: repo, cache: cache}
}

// List returns the catalog with every price normalized to a number. The
// catalog is read through the cache when one is configured. An empty catalog
// is an error, matching the provider contract this service inherited.
func (s *DishService) List(ctx context.Context) ([]domain.Dish, error) {
	if s.cache != nil {
		if dishes, ok, err := s.cache.Get(ctx); err == nil && ok {
			return dishes, nil
		}
	}

	dishes, err := s.repo.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	if len(dishes) == 0 {
		return nil, ErrNoDishes
	}

	for i := range dishes {
		if name, ok := dishes[i].Details["name"].(string); ok {
			dishes[i].Name = name
		}
		dishes[i].Price = NormalizePrice(dishes[i].Details["price"])
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, dishes)
	}
	return dishes, nil
}

// NormalizePrice coerces a price as it appears in a provider document, which
// may be a JSON number or a string, to float64. Unparseable values become 0.
func NormalizePrice(v interface{}) float64 {
	switch price := v.(type) {
	case float64:
		return price
	case int:
		return float64(price)
	case json.Number:
		f, _ := price.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(price, 64)
		return f
	default:
		return 0
	}
}

var _ DishServiceInterface = (*DishService)(nil)
