// ABOUTME: Polymorphic interface over the private and public API variants
// ABOUTME: Optional capabilities are modeled as separate interfaces

package nello

import "context"

var (
	_ Intercom       = (*Client)(nil)
	_ ActivityLister = (*Client)(nil)

	_ Intercom          = (*PublicClient)(nil)
	_ TimeWindowManager = (*PublicClient)(nil)
	_ WebhookManager    = (*PublicClient)(nil)
)

// Intercom is the capability set shared by both API variants.
type Intercom interface {
	// Login authenticates against the API. It is idempotent; the identity
	// is re-derived from the latest server response on every call.
	Login(ctx context.Context) error

	// ListLocations returns the locations the account can access, in the
	// order the server returned them.
	ListLocations(ctx context.Context) ([]Location, error)

	// OpenDoor rings the buzzer for the given location. An empty location
	// ID targets the main (first listed) location. The boolean is the
	// server's verdict; a refused open is not an error.
	OpenDoor(ctx context.Context, locationID string) (bool, error)

	// MainLocation returns the first listed location, or nil when the
	// account has none.
	MainLocation(ctx context.Context) (*Location, error)
}

// ActivityLister is implemented by variants that expose activity logs
// (the private API only).
type ActivityLister interface {
	GetActivity(ctx context.Context, locationID string) ([]Activity, error)
	GetActivityRaw(ctx context.Context, locationID string) ([]byte, error)
}

// TimeWindowManager is implemented by variants that expose iCal access
// schedules (the public API only).
type TimeWindowManager interface {
	ListTimeWindows(ctx context.Context, locationID string) ([]TimeWindow, error)
	CreateTimeWindow(ctx context.Context, locationID, name, ical string) (*TimeWindow, error)
	DeleteTimeWindow(ctx context.Context, locationID, timeWindowID string) error
}

// WebhookManager is implemented by variants that support webhook
// registration (the public API only).
type WebhookManager interface {
	SetWebhook(ctx context.Context, locationID, url string, actions []string) (bool, error)
	DeleteWebhook(ctx context.Context, locationID string) (bool, error)
}
