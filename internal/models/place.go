package models

// Candidate is a tentative match returned by a text query. It is never persisted.
type Candidate struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Types            []string `json:"types"`
}

// PlaceDetail holds the canonical Maps URL, coordinates and photo references of a resolved place.
type PlaceDetail struct {
	URL      string    `json:"url"`
	Geometry *Geometry `json:"geometry"`
	Photos   []Photo   `json:"photos"`
}

// Geometry wraps the place coordinates.
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng is a coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo is a reference to an image served by the photo endpoint.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
