package models

import "time"

// Notification is one inbox entry. Category is one of: episode, trending, new.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Category  string    `json:"category"`
}
