package entities

import (
	"encoding/json"
)

// Place represents a point of interest that users can review.
//
// Descriptive fields whose shape varies between data sources (opening
// times, accessibility notes, walking times and so on) are kept as raw JSON
// and round-trip unchanged.
type Place struct {
	PlaceID          int64    `json:"place_id"`
	LocationID       int64    `json:"location_id"`
	SiteName         string   `json:"site_name" validate:"required"`
	Summary          string   `json:"summary"`
	Description      string   `json:"description"`
	Location         Location `json:"location"`
	Type             []string `json:"type"`
	Tags             []string `json:"tags"`
	Address          Address  `json:"address"`
	Website          []string `json:"website"`
	Email            string   `json:"email,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Categories       []string `json:"categories"`
	VenueDescription string   `json:"venue_description,omitempty"`
	Rating           float64  `json:"rating" validate:"gte=0,lte=5"`

	AllWeather          json.RawMessage `json:"all_weather,omitempty"`
	OpeningTimes        json.RawMessage `json:"opening_times,omitempty"`
	Accessibility       json.RawMessage `json:"accessibility,omitempty"`
	PetFriendly         json.RawMessage `json:"pet_friendly,omitempty"`
	Parking             json.RawMessage `json:"parking,omitempty"`
	VisitTime           json.RawMessage `json:"visit_time,omitempty"`
	UPRN                json.RawMessage `json:"uprn,omitempty"`
	GoogleMapLink       string          `json:"google_map_link,omitempty"`
	WalkTimeBus         json.RawMessage `json:"walk_time_bus,omitempty"`
	NearestBusStop      string          `json:"nearest_bus_stop,omitempty"`
	WalkTimeTrain       json.RawMessage `json:"walk_time_train,omitempty"`
	NearestTrainStation string          `json:"nearest_train_station,omitempty"`
	Directions          string          `json:"directions,omitempty"`
	NearestBusService   string          `json:"nearest_bus_service,omitempty"`
	Image               string          `json:"image,omitempty"`
	CostFree            json.RawMessage `json:"cost_free,omitempty"`
	CostDetails         string          `json:"cost_details,omitempty"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address represents a postal address
type Address struct {
	Address1 string `json:"address_1"`
	Address2 string `json:"address_2"`
	Address3 string `json:"address_3"`
	Postcode string `json:"postcode"`
}

// PlaceSort names the supported place orderings.
type PlaceSort string

const (
	// PlaceSortNone keeps the store's natural order.
	PlaceSortNone PlaceSort = ""
	// PlaceSortName orders by site name, ascending.
	PlaceSortName PlaceSort = "site_name"
	// PlaceSortRating orders by rating, descending.
	PlaceSortRating PlaceSort = "rating"
)

// ParsePlaceSort maps a query value to a PlaceSort. Unknown values impose no
// ordering.
func ParsePlaceSort(value string) PlaceSort {
	switch PlaceSort(value) {
	case PlaceSortName:
		return PlaceSortName
	case PlaceSortRating:
		return PlaceSortRating
	default:
		return PlaceSortNone
	}
}
