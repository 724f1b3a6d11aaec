// ABOUTME: Account and role models populated from the login response
// ABOUTME: One account per client, replaced on each successful login

package nello

// Role describes the account's permission on a single location.
type Role struct {
	LocationID string `json:"location_id"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
}

// Account is the authenticated identity returned by the login endpoint.
type Account struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Roles     []Role `json:"roles"`
}
