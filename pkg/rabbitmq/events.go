package rabbitmq

// Routing keys for events published to the order events queue.
const (
	RouteOrderCreated = "order.created"
	RouteOrderShipped = "order.shipped"
)

// OrderCreatedEvent is published after an order is placed. Total is a
// fixed-point decimal string so consumers never round-trip money through
// floating point.
type OrderCreatedEvent struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
	Total   string `json:"total"`
}

// OrderShippedEvent is published when an order moves to shipped.
type OrderShippedEvent struct {
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}
