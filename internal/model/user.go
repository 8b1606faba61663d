package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered employer who posts notices
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone_number"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// Admin is a moderator account. Admins are provisioned out of band.
type Admin struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller carried by a bearer token.
// ID refers to the users table for RoleUser and to the admins table for RoleAdmin.
type Identity struct {
	ID   int
	Name string
	Role string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
