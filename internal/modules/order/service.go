package order

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/partshub/autoparts-backend/internal/events"
	"github.com/partshub/autoparts-backend/internal/modules/cart"
	"github.com/partshub/autoparts-backend/internal/modules/catalog"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("module", "order").Logger()

// Service defines checkout and order lifecycle business logic.
type Service interface {
	// Checkout places an order from an explicit (part, quantity) list.
	Checkout(ctx context.Context, req CheckoutRequest) (*Order, error)

	// CheckoutCart places an order from the session cart and clears the
	// cart on success. Unresolvable or non-positive-quantity entries
	// are dropped silently.
	CheckoutCart(ctx context.Context, session string, req CheckoutRequest) (*Order, error)

	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListStoreOrders(ctx context.Context, storeID int64, status string) ([]*Order, error)
	ListCustomerOrders(ctx context.Context, customerID int64) ([]*Order, error)

	// UpdateStatus applies staff-driven order/delivery status changes,
	// reassigns the handling employee, and derives ship/delivery dates
	// idempotently.
	UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*Order, error)
}

type service struct {
	repo      Repository
	catalog   catalog.Service
	directory directory.Service
	cart      cart.Service
	publisher events.Publisher
}

// NewService creates a new order service.
func NewService(repo Repository, catalogService catalog.Service, directoryService directory.Service, cartService cart.Service, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &service{
		repo:      repo,
		catalog:   catalogService,
		directory: directoryService,
		cart:      cartService,
		publisher: publisher,
	}
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	items, err := s.resolveExplicitItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return s.placeOrder(ctx, req, items)
}

func (s *service) CheckoutCart(ctx context.Context, session string, req CheckoutRequest) (*Order, error) {
	entries, err := s.cart.Entries(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	items := s.resolveCartEntries(ctx, entries)
	o, err := s.placeOrder(ctx, req, items)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, session); err != nil {
		logger.Warn().Err(err).Int64("order_id", o.ID).Msg("clear cart after checkout")
	}
	return o, nil
}

// resolveExplicitItems validates a structured item list against the
// catalog. Unlike the cart path, bad input here is an error.
func (s *service) resolveExplicitItems(ctx context.Context, items []ItemRequest) ([]*OrderItem, error) {
	var resolved []*OrderItem
	index := make(map[int64]*OrderItem)

	for _, ir := range items {
		if ir.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for part %d", ErrInvalidRequest, ir.PartID)
		}
		part, err := s.catalog.GetPart(ctx, ir.PartID)
		if err != nil {
			return nil, err
		}
		if existing := index[part.ID]; existing != nil {
			existing.Quantity += ir.Quantity
			continue
		}
		item := &OrderItem{
			PartID:    part.ID,
			PartName:  part.Name,
			PartSKU:   part.SKU,
			Quantity:  ir.Quantity,
			UnitPrice: part.UnitPrice,
		}
		index[part.ID] = item
		resolved = append(resolved, item)
	}
	return resolved, nil
}

// resolveCartEntries turns normalized cart entries into line items.
// Entries that resolve to no catalog part are dropped; duplicate keys
// resolving to the same part collapse into one line with summed
// quantity. A client-supplied price is only trusted when positive.
func (s *service) resolveCartEntries(ctx context.Context, entries map[string]cart.Entry) []*OrderItem {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var resolved []*OrderItem
	index := make(map[int64]*OrderItem)

	for _, key := range keys {
		entry := entries[key]

		part, err := s.catalog.Find(ctx, key)
		if err != nil && entry.Name != "" {
			part, err = s.catalog.Find(ctx, entry.Name)
		}
		if err != nil {
			logger.Debug().Str("part_key", key).Msg("dropping unresolvable cart entry")
			continue
		}
		if entry.Quantity <= 0 {
			continue
		}

		price := decimal.NewFromFloat(entry.UnitPrice)
		if price.LessThanOrEqual(decimal.Zero) {
			price = part.UnitPrice
		}

		if existing := index[part.ID]; existing != nil {
			existing.Quantity += entry.Quantity
			continue
		}
		item := &OrderItem{
			PartID:    part.ID,
			PartName:  part.Name,
			PartSKU:   part.SKU,
			Quantity:  entry.Quantity,
			UnitPrice: price,
		}
		index[part.ID] = item
		resolved = append(resolved, item)
	}
	return resolved
}

func (s *service) placeOrder(ctx context.Context, req CheckoutRequest, items []*OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidRequest)
	}

	store, err := s.resolveStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	method := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	if method == "" {
		method = MethodCreditCard
	}
	if !ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment_method %s", ErrInvalidRequest, req.PaymentMethod)
	}

	lastFour := req.CardLastFourDigit
	if len(lastFour) > 4 {
		lastFour = lastFour[len(lastFour)-4:]
	}

	o := &Order{
		CustomerID: req.CustomerID,
		StoreID:    store.ID,
		Status:     StatusPending,
		Items:      items,
		Payment: &Payment{
			Method:            method,
			Amount:            Total(items),
			CardLastFour:      lastFour,
			AuthorizationCode: uuid.New().String()[:12],
		},
		Delivery: &Delivery{Status: DeliveryPreparing},
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		StoreID:    o.StoreID,
		Total:      o.Payment.Amount.String(),
		CreatedAt:  o.OrderDate,
	}); err != nil {
		logger.Warn().Err(err).Int64("order_id", o.ID).Msg("publish order created")
	}

	logger.Info().Int64("order_id", o.ID).Int64("customer_id", o.CustomerID).
		Str("total", o.Payment.Amount.String()).Msg("order placed")
	return o, nil
}

// resolveStore picks the fulfilling store: the explicit id when given,
// the configured default otherwise.
func (s *service) resolveStore(ctx context.Context, storeID int64) (*directory.Store, error) {
	if storeID != 0 {
		return s.directory.GetStore(ctx, storeID)
	}
	store, err := s.directory.DefaultStore(ctx)
	if err != nil {
		return nil, ErrNoStoreConfigured
	}
	return store, nil
}

func (s *service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListStoreOrders(ctx context.Context, storeID int64, status string) ([]*Order, error) {
	filter := Status(strings.ToUpper(status))
	if status != "" && !ValidStatus(filter) {
		return nil, &InvalidStatusError{Value: status}
	}
	return s.repo.ListOrdersByStore(ctx, storeID, filter)
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID int64) ([]*Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var newStatus Status
	if req.Status != "" {
		newStatus = Status(strings.ToUpper(req.Status))
		if !ValidStatus(newStatus) {
			return nil, &InvalidStatusError{Value: req.Status}
		}
	}

	var newDeliveryStatus DeliveryStatus
	if req.DeliveryStatus != "" {
		newDeliveryStatus = DeliveryStatus(strings.ToUpper(req.DeliveryStatus))
		if !ValidDeliveryStatus(newDeliveryStatus) {
			return nil, &InvalidStatusError{Value: req.DeliveryStatus}
		}
	}

	// Validate the employee before mutating anything.
	if req.EmployeeID != 0 {
		if _, err := s.directory.GetEmployee(ctx, req.EmployeeID); err != nil {
			return nil, err
		}
	}

	d := o.Delivery
	if d == nil {
		d = &Delivery{
			OrderID:        o.ID,
			Status:         DeliveryPreparing,
			TrackingNumber: trackingNumber(o.ID, time.Now()),
		}
	}

	if req.EmployeeID != 0 {
		employeeID := req.EmployeeID
		d.EmployeeID = &employeeID
	}
	if newStatus != "" {
		o.Status = newStatus
	}
	if newDeliveryStatus != "" {
		d.Status = newDeliveryStatus
	}

	// Derive dates on the first transition only; repeats never
	// overwrite.
	today := dateOnly(time.Now().UTC())
	if newStatus == StatusShipped && d.ShipDate == nil {
		d.ShipDate = &today
	}
	if newStatus == StatusDelivered && d.DeliveryDate == nil {
		d.DeliveryDate = &today
	}

	if err := s.repo.SaveStatus(ctx, o, d); err != nil {
		return nil, err
	}
	o.Delivery = d
	return o, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
