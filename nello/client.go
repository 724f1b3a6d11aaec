// ABOUTME: Session client for the private Nello API
// ABOUTME: Hashed-password login with one automatic re-login retry on expiry

package nello

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

// DefaultAPIBase is the private API host.
const DefaultAPIBase = "https://api.nello.io"

// Client talks to the private Nello API. The session cookie obtained at
// login lives in the HTTP client's cookie jar; expiry is discovered
// reactively when a request comes back with status "400".
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client

	mu      sync.Mutex
	userID  string
	account *Account

	loginGroup singleflight.Group
}

// NewClient creates a client for the private API. No network call is made;
// login happens lazily on the first request.
func NewClient(username, password string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:  DefaultAPIBase,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// SetBaseURL overrides the API host (useful for testing)
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// SetHTTPClient allows overriding the HTTP client (useful for testing).
// The replacement should carry a cookie jar or the session will not stick.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// UserID returns the identity from the most recent successful login,
// or the empty string before the first login.
func (c *Client) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// Account returns the account from the most recent successful login.
func (c *Client) Account() *Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

type loginResponse struct {
	Authentication bool    `json:"authentication"`
	User           Account `json:"user"`
}

// Login authenticates and stores the returned identity. Safe to call
// repeatedly; concurrent calls are collapsed into one.
func (c *Client) Login(ctx context.Context) error {
	_, err, _ := c.loginGroup.Do("login", func() (any, error) {
		return nil, c.doLogin(ctx)
	})
	return err
}

func (c *Client) doLogin(ctx context.Context) error {
	payload := map[string]string{
		"username": c.username,
		"password": HashPassword(c.username, c.password),
	}
	body, err := c.request(ctx, http.MethodPost, "login", payload)
	if err != nil {
		// The expiry signal makes no sense on the login endpoint itself;
		// surface it as a credential rejection.
		var expired *TokenExpiredError
		if errors.As(err, &expired) {
			return &LoginError{Message: expired.Message}
		}
		return err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("invalid login response: %w", err)
	}
	if !resp.Authentication {
		slog.Error("Authentication failed", "status", statusCode(body), "message", errorMessage(body))
		return &LoginError{Message: errorMessage(body)}
	}

	c.mu.Lock()
	c.userID = resp.User.UserID
	c.account = &resp.User
	c.mu.Unlock()
	slog.Info("Login successful", "user_id", resp.User.UserID)
	return nil
}

// request issues exactly one API call. It does not log in again when the
// session has expired; use retryableRequest for that. The body is returned
// even when the call is classified unsuccessful, unless the status is the
// expiry code "400" which surfaces as a TokenExpiredError.
func (c *Client) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + "/" + path
	slog.Debug("API call", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON response from %s", url)
	}

	if !checkSuccess(body) {
		status := statusCode(body)
		message := errorMessage(body)
		slog.Warn("API call unsuccessful", "status", status, "message", message)
		if status == "400" {
			return nil, &TokenExpiredError{Message: message}
		}
	}
	return body, nil
}

// retryableRequest issues an API call that may need to log in again. A
// missing identity triggers a login first; an expired session triggers one
// re-login and exactly one retry. A second consecutive expiry is fatal.
func (c *Client) retryableRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.UserID() == "" {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}

	body, err := c.request(ctx, method, path, payload)
	var expired *TokenExpiredError
	if !errors.As(err, &expired) {
		return body, err
	}

	slog.Info("Session expired, logging in again")
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	body, err = c.request(ctx, method, path, payload)
	if errors.As(err, &expired) {
		return nil, fmt.Errorf("session expired again after re-login: %s", expired.Message)
	}
	return body, err
}

// ListLocations returns the locations the account can access, preserving
// server order.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	body, err := c.retryableRequest(ctx, http.MethodGet, "locations/", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Geofences []Location `json:"geofences"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid locations response: %w", err)
	}
	return resp.Geofences, nil
}

// MainLocation returns the first listed location, or nil when the account
// has none. The server defines the order; nothing is sorted client-side.
func (c *Client) MainLocation(ctx context.Context) (*Location, error) {
	locations, err := c.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, nil
	}
	return &locations[0], nil
}

// resolveLocation substitutes the main location for an empty ID.
func (c *Client) resolveLocation(ctx context.Context, locationID string) (string, error) {
	if locationID != "" {
		return locationID, nil
	}
	main, err := c.MainLocation(ctx)
	if err != nil {
		return "", err
	}
	if main == nil {
		return "", fmt.Errorf("no locations available")
	}
	return main.LocationID, nil
}

// GetActivityRaw returns the raw activity response body for a location.
// An empty location ID targets the main location.
func (c *Client) GetActivityRaw(ctx context.Context, locationID string) ([]byte, error) {
	id, err := c.resolveLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return c.retryableRequest(ctx, http.MethodGet, fmt.Sprintf("locations/%s/activity", id), nil)
}

// GetActivity returns the activity log for a location.
func (c *Client) GetActivity(ctx context.Context, locationID string) ([]Activity, error) {
	body, err := c.GetActivityRaw(ctx, locationID)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Activities []Activity `json:"activities"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid activity response: %w", err)
	}
	return resp.Activities, nil
}

// OpenDoor rings the buzzer for a location. An empty location ID targets
// the main location. The boolean is the server's verdict on the final
// response; a refused open is not an error.
func (c *Client) OpenDoor(ctx context.Context, locationID string) (bool, error) {
	if c.UserID() == "" {
		if err := c.Login(ctx); err != nil {
			return false, err
		}
	}
	id, err := c.resolveLocation(ctx, locationID)
	if err != nil {
		return false, err
	}

	path := fmt.Sprintf("locations/%s/users/%s/open", id, c.UserID())
	body, err := c.retryableRequest(ctx, http.MethodPost, path, map[string]string{"type": "swipe"})
	if err != nil {
		return false, err
	}
	return checkSuccess(body), nil
}
