package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a placed purchase. Identity fields are captured at
// checkout time and never change; only status and the buyer-supplied
// e-transfer reference are mutable afterwards.
type Order struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	UserID             uuid.UUID   `json:"userId" db:"user_id"`
	TransactionID      string      `json:"transactionId" db:"transaction_id"`
	FullName           string      `json:"fullName" db:"full_name"`
	Address            string      `json:"address" db:"address"`
	Phone              string      `json:"phone" db:"phone"`
	DeliveryWindow     string      `json:"deliveryWindow" db:"delivery_window"`
	TotalAmount        float64     `json:"totalAmount" db:"total_amount"`
	Status             OrderStatus `json:"status" db:"status"`
	EtransferReference *string     `json:"etransferReference,omitempty" db:"etransfer_reference"`
	Items              []OrderItem `json:"items,omitempty"`
	CreatedAt          time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is an immutable snapshot of one cart line at purchase time.
// UnitPrice is frozen so later catalogue changes never alter history.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
	Product   *Product  `json:"product,omitempty"`
}

// CheckoutRequest is the shipping detail payload for placing an order.
type CheckoutRequest struct {
	FullName       string `json:"fullName"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	DeliveryWindow string `json:"deliveryWindow"`
}

// PaymentInstructions tell the buyer how to settle a pending order.
// The transaction id must be quoted as the e-transfer memo so staff can
// reconcile the bank transfer against the order.
type PaymentInstructions struct {
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Memo      string  `json:"memo"`
}

// CheckoutResponse is returned after a successful checkout.
type CheckoutResponse struct {
	Order               *Order              `json:"order"`
	PaymentInstructions PaymentInstructions `json:"paymentInstructions"`
}

// UpdateStatusRequest is the admin payload for advancing an order.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AttachReferenceRequest is the buyer payload for recording the
// e-transfer confirmation number.
type AttachReferenceRequest struct {
	Reference string `json:"reference"`
}

// DashboardStats summarises the shop for the admin overview page.
type DashboardStats struct {
	TotalOrders      int       `json:"totalOrders"`
	Revenue          float64   `json:"revenue"`
	Customers        int       `json:"customers"`
	ProductCount     int       `json:"productCount"`
	RecentOrders     []Order   `json:"recentOrders"`
	LowStockProducts []Product `json:"lowStockProducts"`
	OutOfStockCount  int       `json:"outOfStockCount"`
}
