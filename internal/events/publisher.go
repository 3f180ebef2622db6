package events

import (
	"context"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const EventTypeOrderConfirmed = "order_confirmed"

// OrderConfirmed is the payload published when the cart is confirmed.
type OrderConfirmed struct {
	OrderID     string            `json:"order_id"`
	Namespace   string            `json:"namespace"`
	Items       []domain.CartLine `json:"items"`
	Total       decimal.Decimal   `json:"total"`
	Discount    decimal.Decimal   `json:"discount"`
	FinalTotal  decimal.Decimal   `json:"final_total"`
	ConfirmedAt time.Time         `json:"confirmed_at"`
}

func NewOrderConfirmed(namespace string, order domain.Order) OrderConfirmed {
	return OrderConfirmed{
		OrderID:     order.ID,
		Namespace:   namespace,
		Items:       order.Lines,
		Total:       order.Pricing.Total,
		Discount:    order.Pricing.Discount,
		FinalTotal:  order.Pricing.FinalTotal,
		ConfirmedAt: order.ConfirmedAt,
	}
}

type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, event OrderConfirmed) error
	Close() error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderConfirmed(context.Context, OrderConfirmed) error { return nil }

func (NoopPublisher) Close() error { return nil }
