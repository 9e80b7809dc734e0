package models

// Event is a catalog entry shown to visitors. The catalog is read-only data
// loaded at startup.
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
	Prize       string `json:"prize,omitempty" yaml:"prize,omitempty"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Venue       string `json:"venue" yaml:"venue"`
}
