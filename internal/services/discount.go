package services

import (
	"math"
	"strings"
	"time"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
	"travelbooking/internal/repositories"
	"travelbooking/internal/utils"
)

// ApplyDiscount computes the amount a discount takes off a subtotal.
// Percentage discounts round half away from zero. The result is always
// inside [0, subtotal] so a total can never go negative, whatever the
// stored value says.
func ApplyDiscount(d *models.Discount, subtotal int64) int64 {
	if d == nil || subtotal <= 0 {
		return 0
	}
	var amount int64
	switch d.Kind {
	case models.DiscountPercentage:
		amount = int64(math.Round(float64(subtotal) * float64(d.Value) / 100))
	case models.DiscountFixed:
		amount = d.Value
	default:
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	if amount < 0 {
		return 0
	}
	return amount
}

type DiscountService struct {
	DiscountRepo repositories.DiscountRepository
	RequestID    string
}

// Lookup resolves a user-entered code to a usable discount. An empty
// code is not an error; it just means no discount. Unknown, inactive,
// expired and exhausted codes are all rejected.
func (s DiscountService) Lookup(code string, now time.Time) (*models.Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	d, err := s.DiscountRepo.GetByCode(code)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ValidationError{Field: "discount_code", Msg: "unknown discount code"}
		}
		return nil, err
	}

	if !d.Active {
		return nil, domain.ValidationError{Field: "discount_code", Msg: "discount code is no longer active"}
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return nil, domain.ValidationError{Field: "discount_code", Msg: "discount code is not valid yet"}
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return nil, domain.ValidationError{Field: "discount_code", Msg: "discount code has expired"}
	}
	if d.UsageLimit > 0 && d.UsedCount >= d.UsageLimit {
		return nil, domain.ValidationError{Field: "discount_code", Msg: "discount code usage limit reached"}
	}

	utils.LogEvent(s.RequestID, "discount", "lookup", "code "+code+" accepted")
	return &d, nil
}

// Consume bumps the usage counter after a booking that used the code
// went through. Failures are logged, not propagated; the booking is
// already committed at this point.
func (s DiscountService) Consume(code string) {
	if code == "" {
		return
	}
	if err := s.DiscountRepo.IncrementUsage(code); err != nil {
		utils.LogError(s.RequestID, "discount", "consume", err)
	}
}
