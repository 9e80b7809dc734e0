// Package models defines server-side data models persisted in the database
// or exchanged between the service and transport layers.
package models

import "time"

// User is an account as stored by the credential store.
// PasswordHash holds a bcrypt hash, never the raw password.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// PublicUser is the view of a user that may leave the server.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
