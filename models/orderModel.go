package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. "pending" is the initial state, "delivered" terminal.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
)

const (
	DeliveryPickup = "pickup"
	DeliveryDoor   = "door-delivery"
)

type OrderItem struct {
	Name       string   `bson:"name" json:"name" validate:"required"`
	Quantity   int      `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Unit_price float64  `bson:"unit_price" json:"unit_price" validate:"min=0"`
	Size       *string  `bson:"size,omitempty" json:"size,omitempty"`
	Toppings   []string `bson:"toppings,omitempty" json:"toppings,omitempty"`
}

type Coupon struct {
	Is_applied          bool    `bson:"is_applied" json:"is_applied"`
	Code                string  `bson:"code" json:"code"`
	Discount_amount     float64 `bson:"discount_amount" json:"discount_amount"`
	Discount_percentage float64 `bson:"discount_percentage" json:"discount_percentage"`
}

type Order struct {
	ID                   primitive.ObjectID `bson:"_id" json:"-"`
	Order_id             string             `bson:"order_id" json:"order_id"`
	Customer_name        string             `bson:"customer_name" json:"customer_name"`
	Phone                string             `bson:"phone" json:"phone"`
	Email                string             `bson:"email" json:"email"`
	Address              string             `bson:"address" json:"address"`
	Delivery_type        string             `bson:"delivery_type" json:"delivery_type"`
	Items                []OrderItem        `bson:"items" json:"items"`
	Total_amount         float64            `bson:"total_amount" json:"total_amount"`
	Coupon               *Coupon            `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Status               string             `bson:"status" json:"status"`
	User_id              *string            `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Cooking_instructions *string            `bson:"cooking_instructions,omitempty" json:"cooking_instructions,omitempty"`
	Created_at           time.Time          `bson:"created_at" json:"created_at"`
	Updated_at           time.Time          `bson:"updated_at" json:"updated_at"`
}
