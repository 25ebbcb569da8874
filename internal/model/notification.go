package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the order-lifecycle event a notification
// was raised for.
type NotificationType string

const (
	NotificationNewOrder           NotificationType = "new_order"
	NotificationReferenceSubmitted NotificationType = "etransfer_reference_submitted"
	NotificationStatusChange       NotificationType = "order_status_change"
)

// Notification is one row in the append-only admin event log. Rows are
// only ever inserted and flipped to read.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	OrderID   *uuid.UUID       `json:"orderId,omitempty" db:"order_id"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// NotificationList is the polling response: the log newest-first plus
// the unread count.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}
