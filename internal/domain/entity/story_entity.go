package entity

import "time"

// SpendingCategory classifies what the money of a trip went to.
type SpendingCategory string

const (
	CategoryAccommodation SpendingCategory = "Accommodation"
	CategoryFood          SpendingCategory = "Food"
	CategoryTransport     SpendingCategory = "Transport"
	CategoryActivities    SpendingCategory = "Activities"
)

// DefaultCategory applies when a story carries no category.
const DefaultCategory = CategoryActivities

// DefaultTripDuration applies when a story carries no duration.
const DefaultTripDuration = 1

// Valid reports whether c is one of the known categories.
func (c SpendingCategory) Valid() bool {
	switch c {
	case CategoryAccommodation, CategoryFood, CategoryTransport, CategoryActivities:
		return true
	}
	return false
}

// OrDefault returns c, or DefaultCategory when c is empty or unknown.
func (c SpendingCategory) OrDefault() SpendingCategory {
	if c.Valid() {
		return c
	}
	return DefaultCategory
}

// Story is a single travel journal entry owned by exactly one user.
// VisitedLocation keeps the order the user entered. JSON names follow the
// field names the web client already uses.
type Story struct {
	ID               string           `json:"_id"`
	UserID           string           `json:"userId"`
	Title            string           `json:"title"`
	Story            string           `json:"story"`
	VisitedLocation  []string         `json:"visitedLocation"`
	IsFavourite      bool             `json:"isFavourite"`
	ImageURL         string           `json:"imageUrl"`
	VisitedDate      time.Time        `json:"visitedDate"`
	Spending         float64          `json:"spending"`
	SpendingCategory SpendingCategory `json:"spendingCategory"`
	TripDuration     int              `json:"tripDuration"`
	CreatedOn        time.Time        `json:"createdOn"`
}

// Duration returns the trip duration in days, falling back to DefaultTripDuration.
func (s *Story) Duration() int {
	if s.TripDuration <= 0 {
		return DefaultTripDuration
	}
	return s.TripDuration
}
