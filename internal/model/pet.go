package model

import "time"

// Pet represents an animal hosted by a shelter. AdopterID is nil while the
// pet is unadopted. PhotoPath is the object storage key of the pet's photo,
// empty when no photo has been uploaded.
type Pet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	AdopterID *int64    `json:"adopter_id"`
	PhotoPath string    `json:"photo_path,omitempty"`
}
