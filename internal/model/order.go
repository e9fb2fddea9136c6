package model

import "time"

// Order statuses, in fulfillment sequence.
const (
	OrderStatusReceived  = "received"
	OrderStatusPacked    = "packed"
	OrderStatusDelivered = "delivered"
	OrderStatusPaid      = "paid"
)

type Order struct {
	ID               string      `json:"id"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	Email            string      `json:"email"`
	PhoneNumber      string      `json:"phone_number"`
	PickupLocationID string      `json:"pickup_location_id"`
	Comments         string      `json:"comments,omitempty"`
	Status           string      `json:"status"`
	Items            []OrderItem `json:"items"`
	TotalCost        float64     `json:"total_cost"`
	Discount         float64     `json:"discount"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Amount    int     `json:"amount"`
	UnitPrice float64 `json:"unit_price"`
}

// CostAfterDiscount returns the order total with the discount applied.
func (o *Order) CostAfterDiscount() float64 {
	return o.TotalCost - o.Discount
}
