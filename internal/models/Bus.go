// internal/models/bus.go
package models

import (
	"time"

	"fleet_admin/internal/normalize"
)

// Bus is a fleet vehicle record. Category is an open tag set ("troncal",
// "zonal", ...) stored folded; Image is the public URL of the current
// attachment, nil when none was ever uploaded.
type Bus struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string  `json:"name"`
	Category string  `json:"category" gorm:"index"`
	Active   bool    `json:"active"`
	Image    *string `json:"image,omitempty"`
}

// BusPatch carries a partial update. A nil field was not sent at all.
type BusPatch struct {
	Name     *string
	Category *string
	Active   *bool
	Image    *string
}

// Apply copies the present fields onto the record. An empty string counts as
// "not sent": a form posting a blank input never clears stored data.
func (p BusPatch) Apply(b *Bus) {
	if p.Name != nil && *p.Name != "" {
		b.Name = *p.Name
	}
	if p.Category != nil && *p.Category != "" {
		b.Category = normalize.Fold(*p.Category)
	}
	if p.Active != nil {
		b.Active = *p.Active
	}
	if p.Image != nil {
		b.Image = p.Image
	}
}
