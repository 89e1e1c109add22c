package models

import "time"

// Account is a credential record owned by the identity service. UID is
// assigned at creation and is the key every other store uses for the user.
type Account struct {
	UID          string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}
