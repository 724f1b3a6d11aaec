// ABOUTME: Activity log entry model for a location
// ABOUTME: Timestamps are passed through as the server's ISO-8601 strings

package nello

// Activity is one timestamped event log entry for a location.
type Activity struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}
