package cart

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partshub/autoparts-backend/internal/modules/catalog"
)

// fakeCatalog resolves parts by id, SKU, or exact name from a fixed set.
type fakeCatalog struct {
	parts []*catalog.AutoPart
}

func (f *fakeCatalog) Find(_ context.Context, key string) (*catalog.AutoPart, error) {
	for _, p := range f.parts {
		if strconv.FormatInt(p.ID, 10) == key || p.SKU == key || p.Name == key {
			return p, nil
		}
	}
	return nil, catalog.ErrPartNotFound
}

func (f *fakeCatalog) GetPart(_ context.Context, id int64) (*catalog.AutoPart, error) {
	for _, p := range f.parts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalog.ErrPartNotFound
}

func (f *fakeCatalog) CreatePart(context.Context, catalog.CreatePartRequest) (*catalog.AutoPart, error) {
	return nil, nil
}
func (f *fakeCatalog) UpdatePart(context.Context, int64, catalog.CreatePartRequest) (*catalog.AutoPart, error) {
	return nil, nil
}
func (f *fakeCatalog) DeletePart(context.Context, int64) error { return nil }
func (f *fakeCatalog) Search(context.Context, catalog.SearchFilter) ([]*catalog.AutoPart, error) {
	return nil, nil
}
func (f *fakeCatalog) Categories(context.Context) ([]string, error) { return nil, nil }

func newTestService() (Service, *memoryStore) {
	cat := &fakeCatalog{parts: []*catalog.AutoPart{
		{ID: 12, SKU: "AP-1", Name: "Brake Pad Set", UnitPrice: decimal.NewFromFloat(49.99)},
	}}
	store := NewMemoryStore().(*memoryStore)
	return NewService(store, cat), store
}

func TestAddAccumulatesQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	count, err := svc.Add(ctx, "s1", AddRequest{PartID: "12", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.Add(ctx, "s1", AddRequest{PartID: "12", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	entries, err := svc.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, entries["12"].Quantity)
}

func TestAddFillsFromCatalog(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), "s1", AddRequest{PartID: "AP-1", Quantity: 1})
	require.NoError(t, err)

	entries, err := svc.Entries(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Brake Pad Set", entries["AP-1"].Name)
	assert.InDelta(t, 49.99, entries["AP-1"].UnitPrice, 0.001)
}

func TestAddCallerValuesWin(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), "s1", AddRequest{
		PartID: "12", Quantity: 1, Name: "Clearance Pads", UnitPrice: 39.50,
	})
	require.NoError(t, err)

	entries, err := svc.Entries(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Clearance Pads", entries["12"].Name)
	assert.InDelta(t, 39.50, entries["12"].UnitPrice, 0.001)
}

func TestAddCoercesLooseTypes(t *testing.T) {
	svc, _ := newTestService()

	count, err := svc.Add(context.Background(), "s1", AddRequest{
		PartID: "12", Quantity: "2", UnitPrice: "10.50",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.Add(context.Background(), "s1", AddRequest{PartID: "12", Quantity: "junk"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAddUnknownPartStillWorks(t *testing.T) {
	svc, _ := newTestService()

	count, err := svc.Add(context.Background(), "s1", AddRequest{PartID: "999", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := svc.Entries(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Item 999", entries["999"].Name)
	assert.Equal(t, 0.0, entries["999"].UnitPrice)
}

func TestAddRequiresPartKey(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), "s1", AddRequest{PartID: "  "})
	assert.Error(t, err)
}

func TestSummaryTotalsAndOrdering(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", AddRequest{PartID: "b", Name: "B", UnitPrice: 2.0, Quantity: 3})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", AddRequest{PartID: "a", Name: "A", UnitPrice: 1.5, Quantity: 2})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, summary.Items, 2)
	assert.Equal(t, "a", summary.Items[0].PartKey)
	assert.Equal(t, "b", summary.Items[1].PartKey)
	assert.InDelta(t, 3.0, summary.Items[0].LineTotal, 0.001)
	assert.InDelta(t, 6.0, summary.Items[1].LineTotal, 0.001)
	assert.InDelta(t, 9.0, summary.Total, 0.001)
	assert.Equal(t, 5, summary.CartCount)
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", AddRequest{PartID: "12", Quantity: 2})
	require.NoError(t, err)

	count, err := svc.Remove(ctx, "s1", "12")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = svc.Remove(ctx, "s1", "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = svc.Add(ctx, "s1", AddRequest{PartID: "12", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))

	entries, err := svc.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLegacySessionDataNormalizedOnRead(t *testing.T) {
	svc, store := newTestService()

	store.Seed("legacy", map[string]json.RawMessage{
		"12": json.RawMessage(`3`),
		"13": json.RawMessage(`{"name":"Oil Filter","unit_price":"8.25","quantity":"2"}`),
	})

	entries, err := svc.Entries(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, Entry{Name: "Item 12", UnitPrice: 0, Quantity: 3}, entries["12"])
	assert.Equal(t, Entry{Name: "Oil Filter", UnitPrice: 8.25, Quantity: 2}, entries["13"])
}

func TestAddOnTopOfLegacyEntry(t *testing.T) {
	svc, store := newTestService()

	store.Seed("legacy", map[string]json.RawMessage{
		"12": json.RawMessage(`2`),
	})

	count, err := svc.Add(context.Background(), "legacy", AddRequest{PartID: "12", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	entries, err := svc.Entries(context.Background(), "legacy")
	require.NoError(t, err)
	// The add backfills name and price from the catalog.
	assert.Equal(t, "Brake Pad Set", entries["12"].Name)
	assert.Equal(t, 3, entries["12"].Quantity)
}
