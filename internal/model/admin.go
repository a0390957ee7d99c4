package model

// Admin is a back-office user of the application. Password follows the same
// hashed-at-rest, blanked-on-read convention as Adopter.
type Admin struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
