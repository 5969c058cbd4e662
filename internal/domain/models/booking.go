package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMoMo         PaymentMethod = "momo"
	PaymentMethodZaloPay      PaymentMethod = "zalopay"
)

// RequiresGateway reports whether the method hands control to an off-site
// hosted checkout page.
func (m PaymentMethod) RequiresGateway() bool {
	return m == PaymentMethodMoMo || m == PaymentMethodZaloPay
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMoMo, PaymentMethodZaloPay:
		return true
	}
	return false
}

type ItemType string

const (
	ItemTypeTour     ItemType = "tour"
	ItemTypeFlight   ItemType = "flight"
	ItemTypeActivity ItemType = "activity"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTour, ItemTypeFlight, ItemTypeActivity:
		return true
	}
	return false
}

// Booking is the persisted record. Amounts are integer VND.
type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	ItemType       ItemType      `json:"item_type"`
	ItemID         int64         `json:"item_id"`
	ItemName       string        `json:"item_name"`
	Subtotal       int64         `json:"subtotal"`
	DiscountCode   string        `json:"discount_code,omitempty"`
	DiscountAmount int64         `json:"discount_amount"`
	Total          int64         `json:"total"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	GatewayOrderID string        `json:"gateway_order_id,omitempty"`
	IdempotencyKey string        `json:"-"`
	Note           string        `json:"note,omitempty"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// BookingStats aggregates the admin dashboard numbers.
type BookingStats struct {
	TotalBookings    int64                   `json:"total_bookings"`
	BookingsByStatus map[BookingStatus]int64 `json:"bookings_by_status"`
	Revenue          int64                   `json:"revenue"`
	DailyBookings    int64                   `json:"daily_bookings"`
	WeeklyBookings   int64                   `json:"weekly_bookings"`
	MonthlyBookings  int64                   `json:"monthly_bookings"`
}
