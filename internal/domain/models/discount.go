package models

import "time"

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed_amount"
)

func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFixed
}

// Discount is a catalog entry looked up by code. Value is a percentage in
// [0,100] for percentage kind, an absolute VND amount for fixed kind.
type Discount struct {
	ID         int64        `json:"id"`
	Code       string       `json:"code"`
	Kind       DiscountKind `json:"kind"`
	Value      int64        `json:"value"`
	Active     bool         `json:"active"`
	ValidFrom  *time.Time   `json:"valid_from,omitempty"`
	ValidTo    *time.Time   `json:"valid_to,omitempty"`
	UsageLimit int64        `json:"usage_limit"`
	UsedCount  int64        `json:"used_count"`
}
