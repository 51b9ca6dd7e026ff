package cart

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/partshub/autoparts-backend/internal/modules/catalog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("module", "cart").Logger()

// Service defines session cart business logic. No database writes
// happen here; the cart only materializes into an order at checkout.
type Service interface {
	// Add puts qty of a part into the session cart and returns the new
	// cart count. Name and price from the request win when non-trivial;
	// otherwise the catalog is consulted.
	Add(ctx context.Context, session string, req AddRequest) (int, error)

	Summary(ctx context.Context, session string) (*Summary, error)
	Remove(ctx context.Context, session string, partKey string) (int, error)
	Clear(ctx context.Context, session string) error

	// Entries returns the normalized cart content keyed by part key.
	// Checkout consumes this.
	Entries(ctx context.Context, session string) (map[string]Entry, error)
}

type service struct {
	store   Store
	catalog catalog.Service
}

// NewService creates a new cart service.
func NewService(store Store, catalogService catalog.Service) Service {
	return &service{store: store, catalog: catalogService}
}

func (s *service) Add(ctx context.Context, session string, req AddRequest) (int, error) {
	partKey := strings.TrimSpace(req.PartID)
	if partKey == "" {
		return 0, fmt.Errorf("part_id is required")
	}

	qty := clampQuantity(coerceInt(req.Quantity, 1))
	name := strings.TrimSpace(req.Name)
	price := coerceFloat(req.UnitPrice, 0)

	// Fill gaps from the catalog; caller-supplied values take
	// precedence when present and non-trivial.
	if name == "" || price <= 0 {
		if part, err := s.catalog.Find(ctx, partKey); err == nil {
			if name == "" {
				name = part.Name
			}
			if price <= 0 {
				price = part.UnitPrice.InexactFloat64()
			}
		}
	}
	if name == "" {
		name = defaultName(partKey)
	}
	if price < 0 {
		price = 0
	}

	entries, err := s.normalized(ctx, session)
	if err != nil {
		return 0, err
	}

	entry := entries[partKey]
	entry.Name = name
	entry.UnitPrice = price
	entry.Quantity += qty
	entries[partKey] = entry

	if err := s.store.Save(ctx, session, entries); err != nil {
		return 0, err
	}

	logger.Debug().Str("session", session).Str("part", partKey).Int("qty", qty).Msg("cart add")
	return cartCount(entries), nil
}

func (s *service) Summary(ctx context.Context, session string) (*Summary, error) {
	entries, err := s.normalized(ctx, session)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summary := &Summary{Items: make([]SummaryItem, 0, len(keys))}
	for _, key := range keys {
		entry := entries[key]
		lineTotal := float64(entry.Quantity) * entry.UnitPrice
		summary.Items = append(summary.Items, SummaryItem{
			PartKey:   key,
			Name:      entry.Name,
			UnitPrice: entry.UnitPrice,
			Quantity:  entry.Quantity,
			LineTotal: lineTotal,
		})
		summary.Total += lineTotal
		summary.CartCount += entry.Quantity
	}
	return summary, nil
}

func (s *service) Remove(ctx context.Context, session string, partKey string) (int, error) {
	entries, err := s.normalized(ctx, session)
	if err != nil {
		return 0, err
	}

	if _, ok := entries[partKey]; ok {
		delete(entries, partKey)
		if err := s.store.Save(ctx, session, entries); err != nil {
			return 0, err
		}
	}
	return cartCount(entries), nil
}

func (s *service) Clear(ctx context.Context, session string) error {
	return s.store.Clear(ctx, session)
}

func (s *service) Entries(ctx context.Context, session string) (map[string]Entry, error) {
	return s.normalized(ctx, session)
}

func (s *service) normalized(ctx context.Context, session string) (map[string]Entry, error) {
	raw, err := s.store.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

func cartCount(entries map[string]Entry) int {
	count := 0
	for _, entry := range entries {
		count += entry.Quantity
	}
	return count
}
