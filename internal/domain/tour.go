package domain

import "time"

// Tour is a sellable excursion product.
type Tour struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       int64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
