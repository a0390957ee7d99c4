package model

import "time"

// Shelter represents an adoption shelter registered in the system.
type Shelter struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Address is the physical location of a shelter. Each address belongs to
// exactly one shelter.
type Address struct {
	ID        int64  `json:"id"`
	Street    string `json:"street"`
	Number    string `json:"number"`
	City      string `json:"city"`
	State     string `json:"state"`
	ShelterID int64  `json:"shelter_id"`
}
