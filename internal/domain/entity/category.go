package entity

import "time"

// Category agrupa productos para agregación y para acotar el reorden.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
