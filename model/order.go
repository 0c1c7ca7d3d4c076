package model

import "time"

// Order statuses. delivered and cancelled are terminal.
const (
	StatusPendingPayment = "pending_payment"
	StatusPaid           = "paid"
	StatusPreparing      = "preparing"
	StatusInTransit      = "in_transit"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

const (
	PaymentBalance = "balance"
	PaymentCOD     = "cash_on_delivery"
)

// LineItem is a snapshot of one ordered product. The unit price already
// includes size and add-on modifiers; checkout only sums.
type LineItem struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	Size        string   `json:"size,omitempty"`
	Sugar       int      `json:"sugar,omitempty"`
	Ice         int      `json:"ice,omitempty"`
	Milk        string   `json:"milk,omitempty"`
	Upsells     []string `json:"upsells,omitempty"`
	Price       int64    `json:"price"`
}

type Order struct {
	ID               string     `gorm:"primaryKey;size:8" json:"id"`
	UserID           uint       `gorm:"index" json:"user_id"`
	Items            []LineItem `gorm:"serializer:json;type:jsonb" json:"items"`
	Total            int64      `json:"total"`
	Discount         int64      `json:"discount"`
	ShippingFee      int64      `json:"shipping_fee"`
	Status           string     `json:"status"`
	PaymentMethod    string     `json:"payment_method"`
	PromoCode        string     `json:"promo_code,omitempty"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	DeliveryDistrict string     `json:"delivery_district,omitempty"`
	DeliveryWard     string     `json:"delivery_ward,omitempty"`
	DeliveryStreet   string     `json:"delivery_street,omitempty"`
	SpecialNotes     string     `json:"special_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	PaymentTime      *time.Time `json:"payment_time,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// IsRefundable reports whether a balance order in this status was actually
// paid and must be refunded on cancellation.
func IsRefundable(status string) bool {
	return status == StatusPaid || status == StatusPreparing || status == StatusInTransit
}
