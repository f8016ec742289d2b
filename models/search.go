package models

// ApiParams is the structured, schema-validated representation of one user
// turn's search and itinerary intent. AnalyzedQuery is always present; the
// sub-param blocks are independently optional, so a single turn may carry
// zero, one, two or three search intents plus an itinerary request.
type ApiParams struct {
	AnalyzedQuery    string           `json:"analyzedQuery"`
	Flight           *FlightParams    `json:"flight,omitempty"`
	Hotel            *HotelParams     `json:"hotel,omitempty"`
	Car              *CarParams       `json:"car,omitempty"`
	ItineraryRequest *ItineraryParams `json:"itineraryRequest,omitempty"`
}

// FlightParams are the provider-facing flight search inputs.
type FlightParams struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"` // YYYY-MM-DD
	ReturnDate    string   `json:"return_date,omitempty"`
	Passengers    int      `json:"passengers,omitempty"`
	Airlines      []string `json:"airlines,omitempty"`
	MaxPrice      float64  `json:"max_price,omitempty"`
}

// HotelParams are the provider-facing stay search inputs.
type HotelParams struct {
	Location     string  `json:"location"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Guests       int     `json:"guests,omitempty"`
	Stars        int     `json:"stars,omitempty"`
	MaxPrice     float64 `json:"max_price,omitempty"`
}

// CarParams are the provider-facing car rental search inputs.
type CarParams struct {
	Location    string  `json:"location"`
	PickupDate  string  `json:"pickup_date"`
	DropoffDate string  `json:"dropoff_date"`
	CarType     string  `json:"car_type,omitempty"`
	MaxPrice    float64 `json:"max_price,omitempty"`
}

// ItineraryParams describe an explicit activities/things-to-do request.
type ItineraryParams struct {
	Location string `json:"location"`
	Days     int    `json:"days,omitempty"`
	Interest string `json:"interest,omitempty"`
}

// ResultType discriminates the SearchResult union.
type ResultType string

const (
	ResultFlight ResultType = "flight"
	ResultStay   ResultType = "stay"
	ResultCar    ResultType = "car"
)

// SearchResult is the tagged union returned by the provider searches. Type
// selects which of the variant pointers is populated.
type SearchResult struct {
	Type    ResultType    `json:"type"`
	Flight  *FlightResult `json:"flight,omitempty"`
	Stay    *StayResult   `json:"stay,omitempty"`
	Car     *CarResult    `json:"car,omitempty"`
	Ranking string        `json:"ranking,omitempty"` // why this result ranked where it did
}

// FlightResult is one flight offer.
type FlightResult struct {
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flightNumber"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Stops         int     `json:"stops"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}

// StayResult is one hotel or stay offer.
type StayResult struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Stars         int     `json:"stars"`
	Rating        float64 `json:"rating"`
	PricePerNight float64 `json:"pricePerNight"`
	Currency      string  `json:"currency"`
}

// CarResult is one rental car offer.
type CarResult struct {
	Company     string  `json:"company"`
	Model       string  `json:"model"`
	CarType     string  `json:"carType"`
	Location    string  `json:"location"`
	PricePerDay float64 `json:"pricePerDay"`
	Currency    string  `json:"currency"`
}

// ProviderFailure records a single provider's classified failure inside a
// partially successful dispatch.
type ProviderFailure struct {
	Provider string `json:"provider"`
	Message  string `json:"message"`
}

// SearchOutcome is the dispatcher's aggregate: results in fixed category
// order (flights, stays, cars) plus any per-provider failures.
type SearchOutcome struct {
	Results  []SearchResult    `json:"results"`
	Failures []ProviderFailure `json:"failures,omitempty"`
}

// Requested returns how many provider searches the params ask for.
func (p ApiParams) Requested() int {
	n := 0
	if p.Flight != nil {
		n++
	}
	if p.Hotel != nil {
		n++
	}
	if p.Car != nil {
		n++
	}
	return n
}
