package domain

import "time"

// Notification is the event carried by the queue based transports.
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
