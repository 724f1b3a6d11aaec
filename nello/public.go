// ABOUTME: Client for the public Nello API using an OAuth2 password grant
// ABOUTME: Adds time window and webhook management on top of door control

package nello

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const (
	// DefaultPublicAPIBase is the public API host.
	DefaultPublicAPIBase = "https://public-api.nello.io/v1"
	// DefaultTokenURL is the OAuth2 token endpoint.
	DefaultTokenURL = "https://auth.nello.io/oauth/token/"
)

// webhookActions is the full set of action types a webhook may subscribe to.
var webhookActions = []string{"swipe", "geo", "tw", "deny"}

// TimeWindow is an iCal-defined recurring access schedule on a location.
type TimeWindow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
	Ical  string `json:"ical"`
}

// PublicClient talks to the public Nello API. Token refresh is handled by
// the oauth2 transport; the password grant runs once at login.
type PublicClient struct {
	clientID string
	username string
	password string
	baseURL  string
	tokenURL string

	mu         sync.Mutex
	httpClient *http.Client
}

// NewPublicClient creates a client for the public API. No network call is
// made; the token is fetched lazily on the first request.
func NewPublicClient(clientID, username, password string) *PublicClient {
	return &PublicClient{
		clientID: clientID,
		username: username,
		password: password,
		baseURL:  DefaultPublicAPIBase,
		tokenURL: DefaultTokenURL,
	}
}

// SetBaseURL overrides the API host (useful for testing)
func (p *PublicClient) SetBaseURL(u string) {
	p.baseURL = strings.TrimSuffix(u, "/")
}

// SetTokenURL overrides the OAuth2 token endpoint (useful for testing)
func (p *PublicClient) SetTokenURL(u string) {
	p.tokenURL = u
}

// Login runs the OAuth2 password grant and installs the authenticated
// transport. Idempotent; each call fetches a fresh token.
func (p *PublicClient) Login(ctx context.Context) error {
	conf := &oauth2.Config{
		ClientID: p.clientID,
		Endpoint: oauth2.Endpoint{TokenURL: p.tokenURL},
	}
	token, err := conf.PasswordCredentialsToken(ctx, p.username, p.password)
	if err != nil {
		return &LoginError{Message: err.Error()}
	}

	p.mu.Lock()
	// Background context: the transport outlives the login call.
	p.httpClient = conf.Client(context.Background(), token)
	p.mu.Unlock()
	slog.Info("Token obtained", "expiry", token.Expiry)
	return nil
}

func (p *PublicClient) client() *http.Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.httpClient
}

// request issues one API call, logging in first when no token is held yet.
// Business-level failures are logged and returned to the caller; only
// transport errors and malformed bodies are errors.
func (p *PublicClient) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if p.client() == nil {
		if err := p.Login(ctx); err != nil {
			return nil, err
		}
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := p.baseURL + "/" + path
	slog.Debug("API call", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client().Do(req)
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

	if !publicSuccess(body) {
		slog.Warn("API call unsuccessful", "body", string(body))
	}
	return body, nil
}

// ListLocations returns the locations the account can access, preserving
// server order.
func (p *PublicClient) ListLocations(ctx context.Context) ([]Location, error) {
	body, err := p.request(ctx, http.MethodGet, "locations/", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data []Location `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid locations response: %w", err)
	}
	return resp.Data, nil
}

// MainLocation returns the first listed location, or nil when the account
// has none.
func (p *PublicClient) MainLocation(ctx context.Context) (*Location, error) {
	locations, err := p.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, nil
	}
	return &locations[0], nil
}

func (p *PublicClient) resolveLocation(ctx context.Context, locationID string) (string, error) {
	if locationID != "" {
		return locationID, nil
	}
	main, err := p.MainLocation(ctx)
	if err != nil {
		return "", err
	}
	if main == nil {
		return "", fmt.Errorf("no locations available")
	}
	return main.LocationID, nil
}

// OpenDoor opens the lock at a location. An empty location ID targets the
// main location. The boolean is the server's verdict.
func (p *PublicClient) OpenDoor(ctx context.Context, locationID string) (bool, error) {
	id, err := p.resolveLocation(ctx, locationID)
	if err != nil {
		return false, err
	}
	body, err := p.request(ctx, http.MethodPut, fmt.Sprintf("locations/%s/open/", id), nil)
	if err != nil {
		return false, err
	}
	return publicSuccess(body), nil
}

// ListTimeWindows returns the access schedules attached to a location.
func (p *PublicClient) ListTimeWindows(ctx context.Context, locationID string) ([]TimeWindow, error) {
	id, err := p.resolveLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	body, err := p.request(ctx, http.MethodGet, fmt.Sprintf("locations/%s/tw/", id), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data []TimeWindow `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid time window response: %w", err)
	}
	return resp.Data, nil
}

// CreateTimeWindow attaches a new iCal access schedule to a location.
func (p *PublicClient) CreateTimeWindow(ctx context.Context, locationID, name, ical string) (*TimeWindow, error) {
	id, err := p.resolveLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	payload := map[string]string{"name": name, "ical": ical}
	body, err := p.request(ctx, http.MethodPost, fmt.Sprintf("locations/%s/tw/", id), payload)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data TimeWindow `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid time window response: %w", err)
	}
	return &resp.Data, nil
}

// DeleteTimeWindow removes an access schedule from a location.
func (p *PublicClient) DeleteTimeWindow(ctx context.Context, locationID, timeWindowID string) error {
	id, err := p.resolveLocation(ctx, locationID)
	if err != nil {
		return err
	}
	_, err = p.request(ctx, http.MethodDelete, fmt.Sprintf("locations/%s/tw/%s/", id, timeWindowID), nil)
	return err
}

// SetWebhook registers (or replaces) the webhook URL for a location.
// A nil actions slice subscribes to all action types; invalid action values
// are rejected before any request is sent.
func (p *PublicClient) SetWebhook(ctx context.Context, locationID, url string, actions []string) (bool, error) {
	if actions == nil {
		actions = webhookActions
	}
	for _, action := range actions {
		if !validWebhookAction(action) {
			return false, fmt.Errorf("invalid webhook action %q (valid: %s)", action, strings.Join(webhookActions, ", "))
		}
	}

	id, err := p.resolveLocation(ctx, locationID)
	if err != nil {
		return false, err
	}
	payload := map[string]any{"url": url, "actions": actions}
	body, err := p.request(ctx, http.MethodPut, fmt.Sprintf("locations/%s/webhook/", id), payload)
	if err != nil {
		return false, err
	}
	return publicSuccess(body), nil
}

// DeleteWebhook removes the webhook registration for a location.
func (p *PublicClient) DeleteWebhook(ctx context.Context, locationID string) (bool, error) {
	id, err := p.resolveLocation(ctx, locationID)
	if err != nil {
		return false, err
	}
	body, err := p.request(ctx, http.MethodDelete, fmt.Sprintf("locations/%s/webhook/", id), nil)
	if err != nil {
		return false, err
	}
	return publicSuccess(body), nil
}

func validWebhookAction(action string) bool {
	for _, a := range webhookActions {
		if action == a {
			return true
		}
	}
	return false
}
