package model

import "time"

// Place is a point of interest with coordinates and descriptive metadata.
type Place struct {
	ID int64 `json:"id"`
	// PlaceID is the external identifier supplied by the importer; nil when absent.
	PlaceID     *string   `json:"place_id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     string    `json:"address"`
	Category    []string  `json:"category"`
	Description string    `json:"description"`
	WorkHours   string    `json:"work_hours"`
	Website     string    `json:"website"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaceUpdate carries a partial update. Nil fields are left untouched.
type PlaceUpdate struct {
	Name        *string
	Address     *string
	Category    *[]string
	Description *string
	WorkHours   *string
	Website     *string
	Phone       *string
}

// IsEmpty reports whether the update changes nothing.
func (u PlaceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Address == nil && u.Category == nil &&
		u.Description == nil && u.WorkHours == nil && u.Website == nil && u.Phone == nil
}

// PlaceSummary is the reduced projection used by name search and list views.
type PlaceSummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RatedPlace is a place summary annotated with its review aggregate.
type RatedPlace struct {
	PlaceSummary
	Rating
}
