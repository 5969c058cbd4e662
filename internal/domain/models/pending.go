package models

import "time"

// PendingBooking is the staged, not-yet-persisted snapshot bridging the
// redirect to an off-site gateway and the return from it. It lives in a
// single-slot Redis mailbox keyed by the gateway order ID, with a TTL so
// abandoned payments cannot pile up.
type PendingBooking struct {
	Provider       string        `json:"provider"`
	OrderID        string        `json:"order_id"`
	RequestID      string        `json:"request_id,omitempty"`
	UserID         int64         `json:"user_id"`
	ItemType       ItemType      `json:"item_type"`
	ItemID         int64         `json:"item_id"`
	ItemName       string        `json:"item_name"`
	Subtotal       int64         `json:"subtotal"`
	DiscountCode   string        `json:"discount_code,omitempty"`
	DiscountAmount int64         `json:"discount_amount"`
	Total          int64         `json:"total"`
	Participants   []Participant `json:"participants"`
	Note           string        `json:"note,omitempty"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	IdempotencyKey string        `json:"idempotency_key"`
	StagedAt       time.Time     `json:"staged_at"`
}

// Reconciliation records a payment captured by a gateway for which the
// booking row could not be written. These rows are worked off manually by
// support; they are never retried automatically.
type Reconciliation struct {
	ID            int64     `json:"id"`
	Provider      string    `json:"provider"`
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	UserID        int64     `json:"user_id"`
	Amount        int64     `json:"amount"`
	Reason        string    `json:"reason"`
	Resolved      bool      `json:"resolved"`
	CreatedAt     time.Time `json:"created_at"`
}
