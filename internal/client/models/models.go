// Package models holds the API payloads the CLI reads from the server.
package models

// User is the public identity returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Prize       string `json:"prize,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
}
