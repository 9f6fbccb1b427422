package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the public projection of a User returned to clients.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity projects the user without its password hash.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserChanges is a partial update. Nil fields keep their stored value.
type UserChanges struct {
	Name         *string
	PasswordHash *string
}

// Empty reports whether the update carries no field at all.
func (c UserChanges) Empty() bool {
	return c.Name == nil && c.PasswordHash == nil
}
