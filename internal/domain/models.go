package domain

import (
	"encoding/json"
	"time"
)

// Dish is one catalog document as stored by the menu provider. The provider
// document is kept verbatim in Details; ID, Name and Price are lifted out of
// it on read, with Price normalized to a number regardless of how the source
// stored it.
type Dish struct {
	ID      string
	Name    string
	Price   float64
	Details map[string]interface{}
}

// MarshalJSON flattens the provider document into the response, overriding
// id, name and the normalized price.
func (d Dish) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Details)+3)
	for k, v := range d.Details {
		out[k] = v
	}
	out["id"] = d.ID
	out["name"] = d.Name
	out["price"] = d.Price
	return json.Marshal(out)
}

type Order struct {
	ID                 string      `json:"orderId"`
	UserID             string      `json:"userId"`
	OrderStartDatetime string      `json:"orderStartDatetime"`
	OrderEndDatetime   string      `json:"orderEndDatetime"`
	TotalPrice         float64     `json:"totalPrice"`
	TotalCount         int         `json:"totalCount"`
	CreatedAt          time.Time   `json:"createdAt"`
	Items              []OrderItem `json:"items"`
}

// OrderItem is a line of an order. DishID references the dish the line was
// built from; name, price and quantity are copied from the dish at order
// time, not joined live. Grade stays nil until the diner rates the item.
type OrderItem struct {
	DishID   string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Grade    *int    `json:"grade,omitempty"`
}

// Account is the user record held by the identity provider.
type Account struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// OrderEvent is the message published to Kafka on order lifecycle changes.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id,omitempty"`
	DishID    string    `json:"dish_id,omitempty"`
	Grade     *int      `json:"grade,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventOrderCreated = "order_created"
	EventItemGraded   = "item_graded"
)
