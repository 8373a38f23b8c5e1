package models

import "time"

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Review is a single user review attached to an attraction.
type Review struct {
	Author  string  `json:"author"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// Attraction is a point of interest returned by attraction search.
// Immutable once returned; selection membership is tracked by ID.
type Attraction struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	EstimatedTime string       `json:"estimatedTime"`
	Rating        float64      `json:"rating"`
	OpeningHours  string       `json:"openingHours"`
	Address       string       `json:"address,omitempty"`
	Coordinates   *Coordinates `json:"coordinates"`
	Reviews       []Review     `json:"reviews"`
	SourceURL     string       `json:"sourceUrl,omitempty"`
}

// Accommodation is a suggested stay attached to a day plan.
type Accommodation struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Rating      float64 `json:"rating"`
	PriceRange  string  `json:"priceRange"`
	Description string  `json:"description"`
}

// ItinerarySegment is one scheduled activity within a day. Segment order
// implies travel sequence: TravelEstimate is relative to the previous
// segment in iteration order.
type ItinerarySegment struct {
	TimeOfDay   string `json:"timeOfDay"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`

	FoodRecommendations string `json:"foodRecommendations"`
	HiddenGems          string `json:"hiddenGems"`
	InsiderTips         string `json:"insiderTips"`
	Transportation      string `json:"transportation"`
	TravelEstimate      string `json:"travelEstimate"`
	Safety              string `json:"safety"`
	Budget              string `json:"budget"`
	AddOns              string `json:"addOns"`

	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// DayPlan holds one day of the itinerary. Day numbers are 1-based,
// unique within an itinerary, and define rendering order.
type DayPlan struct {
	Day            int                `json:"day"`
	Segments       []ItinerarySegment `json:"segments"`
	SuggestedStays []Accommodation    `json:"suggestedStays,omitempty"`
}

// Itinerary is the full multi-day generated travel plan.
type Itinerary struct {
	Title    string    `json:"title"`
	Overview string    `json:"overview"`
	Days     []DayPlan `json:"days"`
}

// SharedTripRecord is a persisted itinerary addressable by a short
// random identifier. Created once, read-only afterwards.
type SharedTripRecord struct {
	ID        string    `json:"id"`
	Itinerary Itinerary `json:"itinerary"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}
