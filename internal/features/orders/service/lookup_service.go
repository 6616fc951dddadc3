package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"repair-tracker/internal/core/logger"
	"repair-tracker/internal/features/orders/domain"
	"repair-tracker/internal/features/orders/ports"

	"go.uber.org/zap"
)

var (
	// ErrEmptyQuery is returned when the search string is blank. No lookup is made.
	ErrEmptyQuery = errors.New("empty query")
	// ErrOrderNotFound is returned when the store answered with no matching order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStoreUnavailable is returned when the store call itself failed.
	ErrStoreUnavailable = errors.New("order store unavailable")
)

// TrackedOrder is an order together with its position in the repair pipeline.
type TrackedOrder struct {
	Order    domain.Order    `json:"order"`
	Progress domain.Progress `json:"progress"`
	ShopName string          `json:"shop_name,omitempty"`
}

// Result is the outcome of a successful lookup.
type Result struct {
	// Query is the descriptor the search string was classified as.
	Query domain.Query `json:"-"`
	// Orders holds one entry for id and token lookups, one or more for owner lookups.
	Orders []TrackedOrder `json:"orders"`
	// Ambiguous is true when an owner lookup matched more than one order.
	Ambiguous bool `json:"ambiguous"`
}

// LookupService resolves customer search strings to orders.
type LookupService struct {
	// store is the external order store.
	store ports.OrderStore
	// shops resolves shop names; optional.
	shops ports.ShopDirectory
	// mapper turns status labels into progress.
	mapper *domain.ProgressMapper
}

// NewLookupService creates a new LookupService. shops may be nil.
func NewLookupService(store ports.OrderStore, shops ports.ShopDirectory, mapper *domain.ProgressMapper) *LookupService {
	return &LookupService{
		store:  store,
		shops:  shops,
		mapper: mapper,
	}
}

// Lookup classifies raw, performs exactly one store query and maps each
// returned order's status onto the pipeline.
func (s *LookupService) Lookup(ctx context.Context, raw string) (*Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyQuery
	}

	q := domain.Classify(raw)

	orders, err := s.store.FindOrders(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	if q.SingleResult() && len(orders) > 1 {
		logger.Get().Warn("Unique lookup matched several orders, keeping the first",
			zap.String("query_kind", string(q.Kind())),
			zap.Int("matches", len(orders)),
		)
		orders = orders[:1]
	}

	result := &Result{
		Query:     q,
		Orders:    make([]TrackedOrder, 0, len(orders)),
		Ambiguous: len(orders) > 1,
	}

	for _, order := range orders {
		result.Orders = append(result.Orders, TrackedOrder{
			Order:    order,
			Progress: s.Progress(order.Status),
			ShopName: s.shopName(ctx, order.OwnerID),
		})
	}

	return result, nil
}

// Progress maps a status label onto the pipeline.
func (s *LookupService) Progress(status string) domain.Progress {
	return s.mapper.Map(status)
}

// shopName is best effort: a failure only costs the display name.
func (s *LookupService) shopName(ctx context.Context, ownerID string) string {
	if s.shops == nil || ownerID == "" {
		return ""
	}

	name, err := s.shops.ShopName(ctx, ownerID)
	if err != nil {
		logger.Get().Warn("Failed to fetch shop name", zap.String("owner_id", ownerID), zap.Error(err))
		return ""
	}
	return name
}
