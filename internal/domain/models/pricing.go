package models

// Role classifies a booking participant for pricing and validation.
type Role string

const (
	RoleAdult  Role = "adult"
	RoleChild  Role = "child"
	RoleInfant Role = "infant"
	RoleSenior Role = "senior"
)

// RoleOrder fixes the grouping order of participants so indexed updates
// stay stable: adults first, then children, infants, seniors.
var RoleOrder = []Role{RoleAdult, RoleChild, RoleInfant, RoleSenior}

// LineItem is one priced role group: quantity seats at a unit price (VND).
type LineItem struct {
	Role      Role  `json:"role"`
	UnitPrice int64 `json:"unit_price"`
	Quantity  int   `json:"quantity"`
}

// AddOn is a flat fee applied per covered participant (airport pickup,
// travel insurance, extra luggage and the like).
type AddOn struct {
	Name  string `json:"name"`
	Fee   int64  `json:"fee"`
	Count int    `json:"count"`
}

// FarePolicy maps a role to its fraction of the adult base fare.
// Roles missing from the policy pay the full base fare.
type FarePolicy map[Role]float64

// FlightFarePolicy is the airline rule: children 90%, infants 10%.
var FlightFarePolicy = FarePolicy{
	RoleAdult:  1.0,
	RoleChild:  0.9,
	RoleInfant: 0.1,
	RoleSenior: 1.0,
}

// FlatFarePolicy charges every role the base fare (tours, activities).
var FlatFarePolicy = FarePolicy{}

// PolicyFor picks the fare policy for an item type.
func PolicyFor(t ItemType) FarePolicy {
	if t == ItemTypeFlight {
		return FlightFarePolicy
	}
	return FlatFarePolicy
}

// Quote is the computed price breakdown of one submission.
type Quote struct {
	Subtotal       int64  `json:"subtotal"`
	DiscountCode   string `json:"discount_code,omitempty"`
	DiscountAmount int64  `json:"discount_amount"`
	Total          int64  `json:"total"`
}
