package model

import "time"

// List is a named, shareable collection of places.
type List struct {
	ID        int64     `json:"id"`
	Name      string    `json:"list_name"`
	OwnerID   int64     `json:"id_user"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMember is a user's membership in a list.
type ListMember struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// ListDetails is a list with its places and members.
type ListDetails struct {
	List
	Places []PlaceSummary
	Users  []ListMember
}

// DateLayout is the DD/MM/YYYY layout used for created_at in responses.
const DateLayout = "02/01/2006"
