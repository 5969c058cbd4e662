package services

import (
	"math"

	"travelbooking/internal/domain/models"
)

// RoleFares derives the per-role unit price from a base price using the
// fare policy of the item type. Rounding is half away from zero so a
// 90% child fare on an odd base never drops below the advertised rate.
func RoleFares(base int64, policy models.FarePolicy) map[models.Role]int64 {
	fares := make(map[models.Role]int64, len(models.RoleOrder))
	for _, role := range models.RoleOrder {
		factor, ok := policy[role]
		if !ok {
			factor = 1.0
		}
		fares[role] = int64(math.Round(float64(base) * factor))
	}
	return fares
}

// LineItemsFromCounts expands a role->count map into ordered line items.
// Roles with zero or negative counts are skipped.
func LineItemsFromCounts(counts map[models.Role]int, fares map[models.Role]int64) []models.LineItem {
	items := []models.LineItem{}
	for _, role := range models.RoleOrder {
		n := counts[role]
		if n <= 0 {
			continue
		}
		items = append(items, models.LineItem{
			Role:      role,
			UnitPrice: fares[role],
			Quantity:  n,
		})
	}
	return items
}

// Subtotal sums line items and add-on fees. Negative quantities and
// counts contribute nothing.
func Subtotal(items []models.LineItem, addons []models.AddOn) int64 {
	var total int64
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		total += it.UnitPrice * int64(it.Quantity)
	}
	for _, a := range addons {
		if a.Count <= 0 {
			continue
		}
		total += a.Fee * int64(a.Count)
	}
	return total
}

// Quote prices a full selection: role counts at the item's base price,
// plus add-ons, minus an already-resolved discount amount. The total
// never goes below zero.
func BuildQuote(base int64, itemType models.ItemType, counts map[models.Role]int, addons []models.AddOn, discountCode string, discountAmount int64) models.Quote {
	fares := RoleFares(base, models.PolicyFor(itemType))
	items := LineItemsFromCounts(counts, fares)
	subtotal := Subtotal(items, addons)

	if discountAmount > subtotal {
		discountAmount = subtotal
	}
	if discountAmount < 0 {
		discountAmount = 0
	}

	return models.Quote{
		Subtotal:       subtotal,
		DiscountCode:   discountCode,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
	}
}
