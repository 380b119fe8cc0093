package models

import "time"

// Notification is a booking message pushed by the server. It has no id;
// two identical messages are two notifications.
type Notification struct {
	Message    string
	ReceivedAt time.Time
}
