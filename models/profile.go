package models

import "time"

// UserProfile supplies defaults for under-specified queries. It is a
// read-only input to the planner: the current turn's text can override any
// field for that call, and overrides are never written back.
type UserProfile struct {
	UserID            string             `bson:"userId" json:"userId"`
	PreferredAirlines []string           `bson:"preferredAirlines" json:"preferredAirlines"`
	MinHotelStars     int                `bson:"minHotelStars" json:"minHotelStars"`
	PreferredCarTypes []string           `bson:"preferredCarTypes" json:"preferredCarTypes"`
	FavoriteDests     []string           `bson:"favoriteDestinations" json:"favoriteDestinations"`
	BudgetCeilings    map[string]float64 `bson:"budgetCeilings" json:"budgetCeilings"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TripKind distinguishes a saved full itinerary from a saved search.
type TripKind string

const (
	TripKindItinerary TripKind = "itinerary"
	TripKindSearch    TripKind = "search"
)

// SavedTripRef is a lightweight handle to a saved trip, used to resolve
// references like "near my Paris trip".
type SavedTripRef struct {
	ID   string   `bson:"id" json:"id"`
	Name string   `bson:"name" json:"name"`
	Kind TripKind `bson:"kind" json:"kind"`
}

// SavedItinerary is a stored day-by-day plan. The disruption path and the
// monitor both read the latest one for a user.
type SavedItinerary struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Name      string         `bson:"name" json:"name"`
	Location  string         `bson:"location" json:"location"`
	Geo       GeoPoint       `bson:"geo" json:"geo"`
	StartDate string         `bson:"startDate" json:"startDate"` // YYYY-MM-DD
	Days      []ItineraryDay `bson:"days" json:"days"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// ItineraryDay groups the stops planned for one day.
type ItineraryDay struct {
	Date  string          `bson:"date" json:"date"`
	Stops []ItineraryStop `bson:"stops" json:"stops"`
}

// ItineraryStop is one activity within a day.
type ItineraryStop struct {
	Time  string `bson:"time" json:"time"`
	Title string `bson:"title" json:"title"`
	Note  string `bson:"note,omitempty" json:"note,omitempty"`
}

// ItinerarySnippet is the short activities list the synthesizer can attach
// to an assistant turn. Distinct from SavedItinerary: it is ephemeral until
// the user saves it.
type ItinerarySnippet struct {
	Location string         `json:"location"`
	Days     []ItineraryDay `json:"days"`
}
