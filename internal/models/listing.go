package models

import "time"

// ListingOwner is the trimmed user view attached to listing reads,
// mirroring what the public API exposes about an owner.
type ListingOwner struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

type Listing struct {
	ID          string
	Title       string
	Description string
	Category    string
	Price       float64
	CreatedBy   string
	Owner       *ListingOwner
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
