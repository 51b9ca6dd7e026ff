package catalog

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	parts  map[int64]*AutoPart
	nextID int64
}

func newFakeRepo(parts ...*AutoPart) *fakeRepo {
	r := &fakeRepo{parts: make(map[int64]*AutoPart), nextID: 1}
	for _, p := range parts {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.parts[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, p *AutoPart) error {
	p.ID = r.nextID
	r.nextID++
	r.parts[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*AutoPart, error) {
	if p, ok := r.parts[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeRepo) GetBySKU(_ context.Context, sku string) (*AutoPart, error) {
	for _, p := range r.parts {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeRepo) GetByName(_ context.Context, name string) (*AutoPart, error) {
	for _, p := range r.parts {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeRepo) Search(context.Context, SearchFilter) ([]*AutoPart, error) { return nil, nil }
func (r *fakeRepo) Categories(context.Context) ([]string, error)             { return nil, nil }

func (r *fakeRepo) Update(_ context.Context, p *AutoPart) error {
	r.parts[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.parts, id)
	return nil
}

func TestFindResolutionOrder(t *testing.T) {
	// Part 7's name is the numeric string "12" and part 12 exists, so a
	// lookup for "12" must hit the id before the name.
	repo := newFakeRepo(
		&AutoPart{ID: 7, SKU: "AP-7", Name: "12"},
		&AutoPart{ID: 12, SKU: "AP-12", Name: "Brake Pad Set"},
	)
	svc := NewService(repo)
	ctx := context.Background()

	byID, err := svc.Find(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), byID.ID)

	bySKU, err := svc.Find(ctx, "AP-7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), bySKU.ID)

	byName, err := svc.Find(ctx, "brake pad set")
	require.NoError(t, err)
	assert.Equal(t, int64(12), byName.ID)
}

func TestFindUnknownKey(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Find(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrPartNotFound)

	_, err = svc.Find(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrPartNotFound)
}

func TestCreatePartValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreatePart(ctx, CreatePartRequest{Name: "No SKU", Condition: "NEW"})
	assert.Error(t, err)

	_, err = svc.CreatePart(ctx, CreatePartRequest{
		SKU: "AP-1", Name: "Brake Pad Set", Condition: "MINT",
		UnitPrice: decimal.NewFromFloat(49.99),
	})
	assert.Error(t, err)

	_, err = svc.CreatePart(ctx, CreatePartRequest{
		SKU: "AP-1", Name: "Brake Pad Set", Condition: "NEW",
		UnitPrice: decimal.Zero,
	})
	assert.Error(t, err)

	p, err := svc.CreatePart(ctx, CreatePartRequest{
		SKU: "AP-1", Name: "Brake Pad Set", Condition: "new",
		UnitPrice: decimal.NewFromFloat(49.99), ReorderLevel: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, ConditionNew, p.Condition)
	assert.NotZero(t, p.ID)
}

func TestGetPartNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.GetPart(context.Background(), 99)
	assert.ErrorIs(t, err, ErrPartNotFound)
}
