package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partshub/autoparts-backend/internal/modules/cart"
	"github.com/partshub/autoparts-backend/internal/modules/catalog"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
	"github.com/partshub/autoparts-backend/internal/modules/inventory"
)

// fakeRepo mimics the transactional repository: stock is checked and
// decremented for every line or not at all, under one lock.
type fakeRepo struct {
	mu     sync.Mutex
	stock  map[int64]int
	orders map[int64]*Order
	nextID int64
}

func newFakeRepo(stock map[int64]int) *fakeRepo {
	return &fakeRepo{stock: stock, orders: make(map[int64]*Order), nextID: 1}
}

func (r *fakeRepo) CreateOrder(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range o.Items {
		if r.stock[item.PartID] < item.Quantity {
			return &inventory.InsufficientStockError{PartID: item.PartID, Available: r.stock[item.PartID]}
		}
	}
	for _, item := range o.Items {
		r.stock[item.PartID] -= item.Quantity
	}

	o.ID = r.nextID
	r.nextID++
	o.OrderDate = time.Now().UTC()
	o.Status = StatusProcessing
	for i, item := range o.Items {
		item.ID = int64(i + 1)
		item.OrderID = o.ID
	}
	o.Payment.ID = o.ID
	o.Payment.OrderID = o.ID
	o.Payment.PaidDate = o.OrderDate
	o.Delivery.ID = o.ID
	o.Delivery.OrderID = o.ID
	o.Delivery.TrackingNumber = trackingNumber(o.ID, o.OrderDate)

	saved := *o
	r.orders[o.ID] = &saved
	return nil
}

func (r *fakeRepo) GetOrderByID(_ context.Context, id int64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	if o.Delivery != nil {
		d := *o.Delivery
		copied.Delivery = &d
	}
	return &copied, nil
}

func (r *fakeRepo) ListOrdersByStore(_ context.Context, storeID int64, status Status) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Order
	for _, o := range r.orders {
		if o.StoreID == storeID && (status == "" || o.Status == status) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *fakeRepo) ListOrdersByCustomer(_ context.Context, customerID int64) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *fakeRepo) SaveStatus(_ context.Context, o *Order, d *Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := r.orders[o.ID]
	saved.Status = o.Status
	if d.ID == 0 {
		d.ID = o.ID
	}
	delivery := *d
	saved.Delivery = &delivery
	return nil
}

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

type fakeDirectory struct {
	stores    map[int64]*directory.Store
	employees map[int64]*directory.Employee
	noDefault bool
}

func (f *fakeDirectory) GetStore(_ context.Context, id int64) (*directory.Store, error) {
	if s, ok := f.stores[id]; ok {
		return s, nil
	}
	return nil, directory.ErrStoreNotFound
}

func (f *fakeDirectory) DefaultStore(_ context.Context) (*directory.Store, error) {
	if f.noDefault {
		return nil, directory.ErrStoreNotFound
	}
	for _, s := range f.stores {
		return s, nil
	}
	return nil, directory.ErrStoreNotFound
}

func (f *fakeDirectory) GetEmployee(_ context.Context, id int64) (*directory.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, directory.ErrEmployeeNotFound
}

func (f *fakeDirectory) CreateStore(context.Context, directory.CreateStoreRequest) (*directory.Store, error) {
	return nil, nil
}
func (f *fakeDirectory) ListStores(context.Context) ([]*directory.Store, error) { return nil, nil }
func (f *fakeDirectory) CreateEmployee(context.Context, directory.CreateEmployeeRequest) (*directory.Employee, error) {
	return nil, nil
}
func (f *fakeDirectory) ListEmployees(context.Context, int64) ([]*directory.Employee, error) {
	return nil, nil
}

type fixture struct {
	svc  Service
	repo *fakeRepo
	cart cart.Service
}

func newFixture(stock map[int64]int) *fixture {
	cat := &fakeCatalog{parts: []*catalog.AutoPart{
		{ID: 1, SKU: "AP-1", Name: "Brake Pad Set", UnitPrice: decimal.NewFromFloat(49.99)},
		{ID: 2, SKU: "AP-2", Name: "Oil Filter", UnitPrice: decimal.NewFromFloat(8.25)},
		{ID: 3, SKU: "AP-3", Name: "Spark Plug", UnitPrice: decimal.NewFromFloat(4.10)},
	}}
	dir := &fakeDirectory{
		stores:    map[int64]*directory.Store{1: {ID: 1, Name: "Main Street"}},
		employees: map[int64]*directory.Employee{10: {ID: 10, StoreID: 1, FullName: "Dana Smith"}},
	}
	repo := newFakeRepo(stock)
	cartSvc := cart.NewService(cart.NewMemoryStore(), cat)
	return &fixture{
		svc:  NewService(repo, cat, dir, cartSvc, nil),
		repo: repo,
		cart: cartSvc,
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	f := newFixture(map[int64]int{1: 10, 2: 5})

	o, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		CustomerID: 42,
		Items: []ItemRequest{
			{PartID: 1, Quantity: 2},
			{PartID: 2, Quantity: 1},
		},
		PaymentMethod:     "credit_card",
		CardLastFourDigit: "4242111122223333",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Brake Pad Set", o.Items[0].PartName)

	// 2 * 49.99 + 8.25
	assert.True(t, o.Payment.Amount.Equal(decimal.NewFromFloat(108.23)),
		"payment amount %s", o.Payment.Amount)
	assert.Equal(t, MethodCreditCard, o.Payment.Method)
	assert.Equal(t, "3333", o.Payment.CardLastFour)
	assert.Len(t, o.Payment.AuthorizationCode, 12)

	require.NotNil(t, o.Delivery)
	assert.Equal(t, DeliveryPreparing, o.Delivery.Status)
	assert.NotEmpty(t, o.Delivery.TrackingNumber)

	assert.Equal(t, 8, f.repo.stock[1])
	assert.Equal(t, 4, f.repo.stock[2])
}

func TestCheckoutSnapshotsCatalogPrice(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})

	o, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.NewFromFloat(49.99)))
	assert.True(t, o.Payment.Amount.Equal(decimal.NewFromFloat(99.98)),
		"payment amount %s", o.Payment.Amount)
	assert.Equal(t, 8, f.repo.stock[1])
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newFixture(map[int64]int{1: 10, 2: 0})

	_, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		CustomerID: 42,
		Items: []ItemRequest{
			{PartID: 1, Quantity: 2},
			{PartID: 2, Quantity: 1},
		},
	})

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.PartID)
	assert.Equal(t, 0, stockErr.Available)

	// Nothing persisted, nothing decremented.
	assert.Empty(t, f.repo.orders)
	assert.Equal(t, 10, f.repo.stock[1])
}

func TestCheckoutLastUnitConcurrently(t *testing.T) {
	f := newFixture(map[int64]int{1: 1})

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.svc.Checkout(context.Background(), CheckoutRequest{
				CustomerID: 42,
				Items:      []ItemRequest{{PartID: 1, Quantity: 1}},
			})
			results <- err
		}()
	}

	var failures, successes int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			var stockErr *inventory.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			failures++
		} else {
			successes++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 0, f.repo.stock[1])
}

func TestCheckoutCollapsesDuplicateParts(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})

	o, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		CustomerID: 42,
		Items: []ItemRequest{
			{PartID: 1, Quantity: 2},
			{PartID: 1, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 5, o.Items[0].Quantity)
	assert.Equal(t, 5, f.repo.stock[1])
}

func TestCheckoutValidation(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, CheckoutRequest{CustomerID: 42})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = f.svc.Checkout(ctx, CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.svc.Checkout(ctx, CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, catalog.ErrPartNotFound)

	_, err = f.svc.Checkout(ctx, CheckoutRequest{
		Items: []ItemRequest{{PartID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.svc.Checkout(ctx, CheckoutRequest{
		CustomerID:    42,
		Items:         []ItemRequest{{PartID: 1, Quantity: 1}},
		PaymentMethod: "BARTER",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

// Every rejected checkout maps to a client status; only unexpected
// faults may surface as 500.
func TestCheckoutErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"insufficient stock", &inventory.InsufficientStockError{PartID: 1, Available: 2}, http.StatusUnprocessableEntity},
		{"empty order", ErrEmptyOrder, http.StatusBadRequest},
		{"no store", ErrNoStoreConfigured, http.StatusBadRequest},
		{"missing customer", fmt.Errorf("%w: customer_id is required", ErrInvalidRequest), http.StatusBadRequest},
		{"bad payment method", fmt.Errorf("%w: unknown payment_method BARTER", ErrInvalidRequest), http.StatusBadRequest},
		{"unknown part", catalog.ErrPartNotFound, http.StatusUnprocessableEntity},
		{"unknown store", directory.ErrStoreNotFound, http.StatusUnprocessableEntity},
		{"database down", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondCheckoutError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCheckoutNoStoreConfigured(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	dir := &fakeDirectory{stores: map[int64]*directory.Store{}, noDefault: true}
	cat := &fakeCatalog{parts: []*catalog.AutoPart{
		{ID: 1, SKU: "AP-1", Name: "Brake Pad Set", UnitPrice: decimal.NewFromFloat(49.99)},
	}}
	svc := NewService(f.repo, cat, dir, f.cart, nil)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNoStoreConfigured)
}

func TestCheckoutCart(t *testing.T) {
	f := newFixture(map[int64]int{1: 10, 2: 5})
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", cart.AddRequest{PartID: "1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "s1", cart.AddRequest{PartID: "AP-2", Quantity: 1})
	require.NoError(t, err)
	// Unresolvable entries are dropped, not fatal.
	_, err = f.cart.Add(ctx, "s1", cart.AddRequest{PartID: "mystery-part", Quantity: 1})
	require.NoError(t, err)

	o, err := f.svc.CheckoutCart(ctx, "s1", CheckoutRequest{CustomerID: 42})
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.True(t, o.Payment.Amount.Equal(decimal.NewFromFloat(108.23)),
		"payment amount %s", o.Payment.Amount)

	// Cart is cleared after a successful checkout.
	entries, err := f.cart.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckoutCartDuplicateKeysCollapse(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	ctx := context.Background()

	// Same part under two keys: numeric id and SKU.
	_, err := f.cart.Add(ctx, "s1", cart.AddRequest{PartID: "1", Quantity: 2})
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "s1", cart.AddRequest{PartID: "AP-1", Quantity: 3})
	require.NoError(t, err)

	o, err := f.svc.CheckoutCart(ctx, "s1", CheckoutRequest{CustomerID: 42})
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 5, o.Items[0].Quantity)
	assert.Equal(t, 5, f.repo.stock[1])
}

func TestCheckoutCartAllEntriesUnresolvable(t *testing.T) {
	f := newFixture(map[int64]int{})
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", cart.AddRequest{PartID: "mystery", Quantity: 1})
	require.NoError(t, err)

	_, err = f.svc.CheckoutCart(ctx, "s1", CheckoutRequest{CustomerID: 42})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

// stubCart serves fixed entries, bypassing the cart service's own
// catalog backfill so the checkout-side price guard is observable.
type stubCart struct {
	entries map[string]cart.Entry
	cleared bool
}

func (s *stubCart) Entries(context.Context, string) (map[string]cart.Entry, error) {
	return s.entries, nil
}
func (s *stubCart) Clear(context.Context, string) error { s.cleared = true; return nil }
func (s *stubCart) Add(context.Context, string, cart.AddRequest) (int, error) { return 0, nil }
func (s *stubCart) Summary(context.Context, string) (*cart.Summary, error)    { return nil, nil }
func (s *stubCart) Remove(context.Context, string, string) (int, error)       { return 0, nil }

func TestCheckoutCartFallsBackToCatalogPrice(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	stub := &stubCart{entries: map[string]cart.Entry{
		"1": {Name: "Brake Pad Set", UnitPrice: 0, Quantity: 1},
	}}
	svc := NewService(f.repo, &fakeCatalog{parts: []*catalog.AutoPart{
		{ID: 1, SKU: "AP-1", Name: "Brake Pad Set", UnitPrice: decimal.NewFromFloat(49.99)},
	}}, &fakeDirectory{stores: map[int64]*directory.Store{1: {ID: 1}}}, stub, nil)

	o, err := svc.CheckoutCart(context.Background(), "s1", CheckoutRequest{CustomerID: 42})
	require.NoError(t, err)

	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.NewFromFloat(49.99)),
		"unit price %s", o.Items[0].UnitPrice)
	assert.True(t, stub.cleared)
}

func TestUpdateStatusShipAndDeliver(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	shipped, err := f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{
		Status: "shipped", DeliveryStatus: "in_transit", EmployeeID: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusShipped, shipped.Status)
	assert.Equal(t, DeliveryInTransit, shipped.Delivery.Status)
	require.NotNil(t, shipped.Delivery.ShipDate)
	require.NotNil(t, shipped.Delivery.EmployeeID)
	assert.Equal(t, int64(10), *shipped.Delivery.EmployeeID)
	assert.Nil(t, shipped.Delivery.DeliveryDate)
	firstShipDate := *shipped.Delivery.ShipDate

	// Repeating SHIPPED never overwrites the ship date.
	again, err := f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "SHIPPED"})
	require.NoError(t, err)
	require.NotNil(t, again.Delivery.ShipDate)
	assert.True(t, firstShipDate.Equal(*again.Delivery.ShipDate))

	delivered, err := f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{
		Status: "DELIVERED", DeliveryStatus: "DELIVERED",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, delivered.Status)
	require.NotNil(t, delivered.Delivery.DeliveryDate)
	assert.True(t, firstShipDate.Equal(*delivered.Delivery.ShipDate))
}

func TestUpdateStatusInvalidValues(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "TELEPORTED"})
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{DeliveryStatus: "LOST"})
	assert.ErrorAs(t, err, &statusErr)

	_, err = f.svc.UpdateStatus(ctx, 999, UpdateStatusRequest{Status: "SHIPPED"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusUnknownEmployeeLeavesOrderUntouched(t *testing.T) {
	f := newFixture(map[int64]int{1: 10})
	ctx := context.Background()

	o, err := f.svc.Checkout(ctx, CheckoutRequest{
		CustomerID: 42,
		Items:      []ItemRequest{{PartID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{
		Status: "SHIPPED", EmployeeID: 999,
	})
	assert.ErrorIs(t, err, directory.ErrEmployeeNotFound)

	// The failed update must not have advanced anything.
	reloaded, err := f.svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, reloaded.Status)
	assert.Nil(t, reloaded.Delivery.ShipDate)
	assert.Nil(t, reloaded.Delivery.EmployeeID)
}

func TestListStoreOrdersRejectsUnknownStatusFilter(t *testing.T) {
	f := newFixture(map[int64]int{})

	_, err := f.svc.ListStoreOrders(context.Background(), 1, "BOGUS")
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestTrackingNumberFormat(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 2, 0, time.UTC)
	assert.Equal(t, "TRK4220260314150902", trackingNumber(42, at))
}
