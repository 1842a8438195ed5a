// Package notification holds the payload value types exchanged with the
// local timer scheduler and the remote push gateway.
package notification

// ReminderPayload is the content of one device-local watering reminder.
// PlantID travels as correlation data so the app can open the plant.
type ReminderPayload struct {
	PlantID string
	Title   string
	Body    string
}

// PushMessage is one entry of a dispatcher batch handed to a push
// gateway. Token is the destination device token; Data carries
// correlation data (the plant ID).
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}
