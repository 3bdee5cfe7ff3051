package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusProcessing      OrderStatus = "Processing"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusRefunded        OrderStatus = "Refunded"
	OrderStatusReturnRequested OrderStatus = "Return Requested"
	OrderStatusReturned        OrderStatus = "Returned & Refunded"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderTransitions is the set of legal admin-driven status edges.
// Shipped -> Delivered additionally requires the OTP handshake and is
// never applied by a plain status update.
var OrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing:      {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:         {OrderStatusDelivered, OrderStatusReturnRequested},
	OrderStatusDelivered:       {OrderStatusReturnRequested},
	OrderStatusReturnRequested: {OrderStatusReturned},
	OrderStatusCancelled:       {OrderStatusRefunded},
}

// ValidOrderStatus reports whether s is inside the status enum.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded,
		OrderStatusReturnRequested, OrderStatusReturned:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"index;not null" json:"userId"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          OrderStatus   `gorm:"type:VARCHAR(25);default:'Pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"paymentStatus"`
	PaymentRef      string        `json:"paymentRef,omitempty"` // gateway order id, set by the payment bridge
	OrderDate       time.Time     `json:"orderDate"`
	ShippingAddress string        `gorm:"not null" json:"shippingAddress"`
	Revision        uint          `gorm:"not null;default:0" json:"-"`
}

// OrderItem is a price/title snapshot taken at order-creation time.
// It is never re-derived from the live catalog.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"productId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"img"`
}
