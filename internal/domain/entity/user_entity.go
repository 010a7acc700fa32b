package entity

import (
	"time"
)

// User is the aggregate root for account data.
// Password holds the bcrypt hash and is never serialized.
//
// Places and ProfileID are back-references maintained together with the
// owned records inside one transaction.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Image     string    `json:"image"`
	Places    []string  `json:"places"`
	ProfileID *string   `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPlace reports whether placeID is in the user's place list.
func (u *User) HasPlace(placeID string) bool {
	for _, id := range u.Places {
		if id == placeID {
			return true
		}
	}
	return false
}

// Owner is the public snapshot of a user embedded in read views.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}
