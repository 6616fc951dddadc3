package ports

import (
	"context"

	"repair-tracker/internal/features/orders/domain"
)

// OrderStore finds orders in the external order store.
// This is a Secondary Port (Driven Port).
type OrderStore interface {
	// FindOrders returns every order matching q. An empty slice means no match.
	FindOrders(ctx context.Context, q domain.Query) ([]domain.Order, error)
}

// ShopDirectory resolves the display name of the shop that owns an order.
type ShopDirectory interface {
	// ShopName returns the shop name for ownerID, or "" when it has none.
	ShopName(ctx context.Context, ownerID string) (string, error)
}
