package models

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderStatus is the lifecycle state of an order. The progression is linear;
// cancelled is a terminal side exit reachable only early in the lifecycle.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusBaking         OrderStatus = "baking"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// statusTransitions is the adjacency table for normal progression. Admin
// overrides bypass it but are flagged in the status history.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusBaking},
	StatusBaking:         {StatusReady},
	StatusReady:          {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether no further transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether next is an allowed successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether a customer may still cancel from s.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// PaymentStatus is the payment leg of an order, driven by the gateway.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PizzaSize selects the price multiplier applied to the ingredient subtotal.
type PizzaSize string

const (
	SizeSmall      PizzaSize = "Small"
	SizeMedium     PizzaSize = "Medium"
	SizeLarge      PizzaSize = "Large"
	SizeExtraLarge PizzaSize = "Extra Large"
)

// Valid reports whether z is a known size.
func (z PizzaSize) Valid() bool {
	switch z {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// CrustType is a per-item customization with no price impact.
type CrustType string

const (
	CrustThin    CrustType = "Thin"
	CrustThick   CrustType = "Thick"
	CrustStuffed CrustType = "Stuffed"
)

// Valid reports whether t is a known crust type.
func (t CrustType) Valid() bool {
	switch t {
	case CrustThin, CrustThick, CrustStuffed:
		return true
	}
	return false
}

// Address is a delivery or home address embedded in users and orders.
type Address struct {
	Street   string `gorm:"size:200" json:"street"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	ZipCode  string `gorm:"size:10" json:"zip_code"`
	Landmark string `gorm:"size:200" json:"landmark,omitempty"`
}

// OrderItemTopping is a denormalized snapshot of a veggie or meat selection.
// Name and price are copied at order time so later catalog edits never change
// what a historical order displays.
type OrderItemTopping struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	OrderItemID  uint               `gorm:"index;not null" json:"-"`
	IngredientID uint               `gorm:"not null" json:"ingredient_id"`
	Category     IngredientCategory `gorm:"size:16;not null" json:"category"`
	Name         string             `gorm:"size:100;not null" json:"name"`
	Price        float64            `gorm:"not null" json:"price"`
}

// OrderItem is one customized pizza within an order. Base, sauce and cheese
// are snapshotted the same way toppings are; LinePrice already includes the
// size multiplier and quantity.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"-"`

	BaseID      uint    `gorm:"not null" json:"base_id"`
	BaseName    string  `gorm:"size:100;not null" json:"base_name"`
	BasePrice   float64 `gorm:"not null" json:"base_price"`
	SauceID     uint    `gorm:"not null" json:"sauce_id"`
	SauceName   string  `gorm:"size:100;not null" json:"sauce_name"`
	SaucePrice  float64 `gorm:"not null" json:"sauce_price"`
	CheeseID    uint    `gorm:"not null" json:"cheese_id"`
	CheeseName  string  `gorm:"size:100;not null" json:"cheese_name"`
	CheesePrice float64 `gorm:"not null" json:"cheese_price"`

	Toppings []OrderItemTopping `gorm:"foreignKey:OrderItemID" json:"toppings"`

	Quantity            int       `gorm:"not null;default:1" json:"quantity"`
	Size                PizzaSize `gorm:"size:16;not null;default:'Medium'" json:"size"`
	CrustType           CrustType `gorm:"size:16;not null;default:'Thin'" json:"crust_type"`
	SpecialInstructions string    `gorm:"size:500" json:"special_instructions,omitempty"`
	LinePrice           float64   `gorm:"not null" json:"line_price"`
}

// OrderStatusEvent is one entry of the append-only status history. Manual
// marks an admin override that skipped the normal transition table.
type OrderStatusEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"index;not null" json:"-"`
	Status    OrderStatus `gorm:"size:20;not null" json:"status"`
	Message   string      `gorm:"size:500;not null" json:"message"`
	Manual    bool        `gorm:"not null;default:false" json:"manual"`
	CreatedAt time.Time   `json:"timestamp"`
}

// Order is a composed, priced and tracked purchase. TotalAmount is fixed at
// creation time and never recomputed.
type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"size:20;uniqueIndex;not null" json:"order_ref"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	AmountPaisa int64       `gorm:"not null" json:"amount_paisa"`
	Currency    string      `gorm:"size:3;not null;default:'INR'" json:"currency"`

	Status        OrderStatus   `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:16;index;not null;default:'pending'" json:"payment_status"`

	GatewayOrderID   string `gorm:"size:64;index" json:"gateway_order_id"`
	GatewayPaymentID string `gorm:"size:64" json:"gateway_payment_id,omitempty"`

	DeliveryAddress      Address `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`
	DeliveryInstructions string  `gorm:"size:500" json:"delivery_instructions,omitempty"`

	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actual_delivery_time,omitempty"`

	StatusHistory []OrderStatusEvent `gorm:"foreignKey:OrderID" json:"status_history"`

	Rating  *int       `json:"rating,omitempty"`
	Review  string     `gorm:"size:1000" json:"review,omitempty"`
	RatedAt *time.Time `json:"rated_at,omitempty"`

	RefundRequested   bool       `gorm:"not null;default:false" json:"refund_requested"`
	RefundReason      string     `gorm:"size:500" json:"refund_reason,omitempty"`
	RefundRequestedAt *time.Time `json:"refund_requested_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrderRef generates a human-readable order reference, e.g. PZ20260829410735.
// The random suffix is not guaranteed unique; the order_ref index enforces
// uniqueness and callers regenerate on a collision.
func NewOrderRef(now time.Time) string {
	return fmt.Sprintf("PZ%s%06d", now.Format("20060102"), rand.Intn(1000000))
}

// ItemsCount is the total pizza count across line items.
func (o *Order) ItemsCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
