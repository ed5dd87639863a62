package checkout

import "sync"

// OrderSession carries the backend order id of one checkout. It starts empty
// unless the checkout resumed an existing order, is set once the customer
// step creates the order, and is cleared when the checkout completes.
type OrderSession struct {
	mu      sync.RWMutex
	orderID string
}

func NewOrderSession(orderID string) *OrderSession {
	return &OrderSession{orderID: orderID}
}

func (s *OrderSession) OrderID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderID
}

func (s *OrderSession) Set(orderID string) {
	s.mu.Lock()
	s.orderID = orderID
	s.mu.Unlock()
}

func (s *OrderSession) Clear() { s.Set("") }
