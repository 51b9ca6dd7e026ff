package cart

import (
	"context"
	"encoding/json"
)

// Store persists session carts. Get returns raw JSON values so that
// legacy entries (bare integers, partial records) survive the trip and
// can be normalized on read.
type Store interface {
	Get(ctx context.Context, session string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, session string, entries map[string]Entry) error
	Clear(ctx context.Context, session string) error
}
