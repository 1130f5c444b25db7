package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt encoded, never the raw password
	FirstName    string
	LastName     string
	IsClubMember bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins the name fields for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
