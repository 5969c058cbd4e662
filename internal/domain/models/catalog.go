package models

import "time"

// Destination groups tours and activities by place.
type Destination struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	Description string `json:"description,omitempty"`
}

// Tour is a packaged multi-day trip. BasePrice is the adult price in VND.
type Tour struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DestinationID int64  `json:"destination_id"`
	Description   string `json:"description,omitempty"`
	DurationDays  int    `json:"duration_days"`
	BasePrice     int64  `json:"base_price"`
	Capacity      int    `json:"capacity"`
	Active        bool   `json:"active"`
}

// Flight is a bookable flight leg. BaseFare is the adult fare in VND;
// child and infant fares derive from it via the flight fare policy.
type Flight struct {
	ID       int64     `json:"id"`
	Code     string    `json:"code"`
	Origin   string    `json:"origin"`
	Dest     string    `json:"dest"`
	DepartAt time.Time `json:"depart_at"`
	BaseFare int64     `json:"base_fare"`
	Seats    int       `json:"seats"`
	Active   bool      `json:"active"`
}

// Activity is a single bookable experience at a destination.
type Activity struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DestinationID int64  `json:"destination_id"`
	Description   string `json:"description,omitempty"`
	BasePrice     int64  `json:"base_price"`
	Capacity      int    `json:"capacity"`
	Active        bool   `json:"active"`
}
