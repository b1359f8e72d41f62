package models

import (
	"time"
)

// OrderStatus is the lifecycle state of a flower delivery.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Valid reports whether s is one of the persisted statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// Order is the model for the 'orders' table
type Order struct {
	ID            int64          `json:"id" db:"id"`
	OwnerID       int64          `json:"owner_id" db:"owner_id"` // Set once, from the creating identity
	Status        OrderStatus    `json:"status" db:"status"`
	FlowerDetails map[string]any `json:"flower_details" db:"flower_details"`
	Quantity      int            `json:"quantity" db:"quantity"`
	Address       string         `json:"address" db:"address"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// NewOrder is a fully validated create payload.
type NewOrder struct {
	Status        OrderStatus
	FlowerDetails map[string]any
	Quantity      int
	Address       string
}

// OrderUpdate is a partial update. A nil field means "leave as is".
// Field order here is the column order of the generated UPDATE.
type OrderUpdate struct {
	Status        *OrderStatus
	FlowerDetails map[string]any
	Quantity      *int
	Address       *string
}

// IsEmpty reports whether no field is set.
func (u OrderUpdate) IsEmpty() bool {
	return u.Status == nil && u.FlowerDetails == nil && u.Quantity == nil && u.Address == nil
}
