package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a customer order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// DeliveryStatus is the lifecycle state of a delivery.
type DeliveryStatus string

const (
	DeliveryPreparing DeliveryStatus = "PREPARING"
	DeliveryShipped   DeliveryStatus = "SHIPPED"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

// ValidDeliveryStatus reports whether s is a known delivery status.
func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryPreparing, DeliveryShipped, DeliveryInTransit, DeliveryDelivered, DeliveryFailed:
		return true
	}
	return false
}

// PaymentMethod is how an order was paid.
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodPayPal     PaymentMethod = "PAYPAL"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPayPal:
		return true
	}
	return false
}

// Order is a customer order at a store, with its items, payment, and
// delivery attached.
type Order struct {
	ID         int64        `json:"order_id"`
	CustomerID int64        `json:"customer_id"`
	StoreID    int64        `json:"store_id"`
	OrderDate  time.Time    `json:"order_date"`
	Status     Status       `json:"status"`
	Items      []*OrderItem `json:"items,omitempty"`
	Payment    *Payment     `json:"payment,omitempty"`
	Delivery   *Delivery    `json:"delivery,omitempty"`
}

// OrderItem is one line of an order. UnitPrice is a snapshot of the
// price at purchase time and does not float with later catalog changes.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	PartID    int64           `json:"part_id"`
	PartName  string          `json:"part_name,omitempty"`
	PartSKU   string          `json:"part_sku,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity times the snapshot price.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the line totals of a set of items. It is a pure function
// over the snapshot so the payment amount can be reconciled without
// touching storage.
func Total(items []*OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Payment is the single payment attached to an order. Amount always
// equals the sum of the order's line totals.
type Payment struct {
	ID                int64           `json:"payment_id"`
	OrderID           int64           `json:"order_id"`
	Method            PaymentMethod   `json:"payment_method"`
	Amount            decimal.Decimal `json:"amount"`
	PaidDate          time.Time       `json:"paid_date"`
	CardLastFour      string          `json:"card_last_four_digit,omitempty"`
	AuthorizationCode string          `json:"authorization_code"`
}

// Delivery is the single delivery attached to an order. EmployeeID is
// nullable so an employee leaving does not break the record; ship and
// delivery dates are set exactly once, on the first transition into the
// corresponding status.
type Delivery struct {
	ID             int64          `json:"delivery_id"`
	OrderID        int64          `json:"order_id"`
	ShipDate       *time.Time     `json:"ship_date,omitempty"`
	DeliveryDate   *time.Time     `json:"delivery_date,omitempty"`
	EmployeeID     *int64         `json:"employee_id,omitempty"`
	TrackingNumber string         `json:"tracking_number"`
	Status         DeliveryStatus `json:"delivery_status"`
}

// ItemRequest is one (part, quantity) pair in an explicit checkout.
type ItemRequest struct {
	PartID   int64 `json:"part_id"`
	Quantity int   `json:"quantity"`
}

// CheckoutRequest is the payload for both checkout paths. StoreID 0
// means "the default store". Items is used by the explicit path; the
// cart path ignores it and reads the session cart instead.
type CheckoutRequest struct {
	CustomerID        int64         `json:"customer_id"`
	StoreID           int64         `json:"store_id,omitempty"`
	Items             []ItemRequest `json:"items,omitempty"`
	PaymentMethod     string        `json:"payment_method"`
	CardLastFourDigit string        `json:"card_last_four_digit,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order. All fields
// are optional; supplied ones are applied together.
type UpdateStatusRequest struct {
	Status         string `json:"status,omitempty"`
	DeliveryStatus string `json:"delivery_status,omitempty"`
	EmployeeID     int64  `json:"employee_id,omitempty"`
}
