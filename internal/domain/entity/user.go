package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the accounts domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display and email greetings.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UsernameFromEmail derives the username from the email local-part.
// Collisions are not deduplicated; the unique index on username surfaces
// them as a registration failure.
func UsernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// UserProfile holds display attributes, one-to-one with User.
// Created in the same transaction as the User row.
type UserProfile struct {
	UserID         string
	AddressLine1   string
	AddressLine2   string
	City           string
	State          string
	Country        string
	ProfilePicture string
	UpdatedAt      time.Time
}
