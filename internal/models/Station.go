// internal/models/station.go
package models

import (
	"time"
)

// Station is a stop/terminal record. Routes is a free-text descriptor of the
// routes serving the station, not a structured list.
type Station struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string  `json:"name" gorm:"uniqueIndex"`
	Locality string  `json:"locality"`
	Routes   string  `json:"routes"`
	Active   bool    `json:"active"`
	Image    *string `json:"image,omitempty"`
}

// StationPatch carries a partial update. A nil field was not sent at all.
type StationPatch struct {
	Name     *string
	Locality *string
	Routes   *string
	Active   *bool
	Image    *string
}

// Apply copies the present fields onto the record, with the same
// blank-field rule as BusPatch.
func (p StationPatch) Apply(s *Station) {
	if p.Name != nil && *p.Name != "" {
		s.Name = *p.Name
	}
	if p.Locality != nil && *p.Locality != "" {
		s.Locality = *p.Locality
	}
	if p.Routes != nil && *p.Routes != "" {
		s.Routes = *p.Routes
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	if p.Image != nil {
		s.Image = p.Image
	}
}
