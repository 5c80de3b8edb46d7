package model

// RawRecord is one business object as decoded from the provider's payload.
// Keys follow the convention documented in the search instruction (name,
// industry, activities, rating, address, popularityScore, lat, lng, url,
// phone, website, email, contactPerson) but nothing is guaranteed present
// or correctly typed.
type RawRecord map[string]any

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether both components are zero.
func (l LatLng) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0
}

// ContactPerson is a named representative of a business.
type ContactPerson struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Business is a normalized business record. ID, Industry, Activities and
// Location are always populated.
type Business struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Industry        string         `json:"industry"`
	Activities      []string       `json:"activities"`
	Rating          float64        `json:"rating"`
	Address         string         `json:"address"`
	Location        LatLng         `json:"location"`
	URL             string         `json:"url"`
	PopularityScore *float64       `json:"popularityScore,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Website         string         `json:"website,omitempty"`
	Email           string         `json:"email,omitempty"`
	ContactPerson   *ContactPerson `json:"contactPerson,omitempty"`
}
