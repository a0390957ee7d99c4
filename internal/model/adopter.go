package model

import "time"

// Adopter represents a person who can adopt pets.
// Password holds the plaintext on the way in and the bcrypt hash at rest;
// outbound payloads always carry it blanked (see service sanitization).
type Adopter struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Password     string    `json:"password"`
	RegisteredAt time.Time `json:"registered_at"`
}
