package model

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPendingPayment  OrderStatus = "pending_payment"
	StatusPaymentVerified OrderStatus = "payment_verified"
	StatusPreparing       OrderStatus = "preparing"
	StatusOutForDelivery  OrderStatus = "out_for_delivery"
	StatusDelivered       OrderStatus = "delivered"
	StatusCancelled       OrderStatus = "cancelled"
)

// validTransitions maps each state to the states reachable from it.
// Fulfilment advances strictly forward; cancellation is allowed from any
// non-terminal state. delivered and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingPayment:  {StatusPaymentVerified, StatusCancelled},
	StatusPaymentVerified: {StatusPreparing, StatusCancelled},
	StatusPreparing:       {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery:  {StatusDelivered, StatusCancelled},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validTransitions[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether the status is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	targets, ok := validTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the states reachable from s. The slice is a copy.
func (s OrderStatus) NextStatuses() []OrderStatus {
	targets := validTransitions[s]
	out := make([]OrderStatus, len(targets))
	copy(out, targets)
	return out
}
