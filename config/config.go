// ABOUTME: Configuration loader for the nello CLI
// ABOUTME: Loads settings from environment variables, overridable by flags

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Credentials
	Username string
	Password string

	// Default target lock; empty means first location returned by the server
	Location string

	// OAuth client ID; non-empty selects the public API variant
	ClientID string

	// Endpoint overrides (primarily for testing against fakes)
	APIURL  string
	AuthURL string
}

// PublicVariant returns true if the public (OAuth2) API should be used
func (c *Config) PublicVariant() bool {
	return c.ClientID != ""
}

// Load reads configuration from environment variables.
// A .env file is honored if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Username: os.Getenv("NELLO_USERNAME"),
		Password: os.Getenv("NELLO_PASSWORD"),
		Location: os.Getenv("NELLO_LOCATION"),
		ClientID: os.Getenv("NELLO_CLIENT_ID"),
		APIURL:   ensureScheme(os.Getenv("NELLO_API_URL")),
		AuthURL:  ensureScheme(os.Getenv("NELLO_AUTH_URL")),
	}
}

// Merge applies non-empty override values on top of the loaded config.
// Used by the CLI so flags take priority over environment variables.
func (c *Config) Merge(o *Config) {
	if o.Username != "" {
		c.Username = o.Username
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	if o.Location != "" {
		c.Location = o.Location
	}
	if o.ClientID != "" {
		c.ClientID = o.ClientID
	}
	if o.APIURL != "" {
		c.APIURL = ensureScheme(o.APIURL)
	}
	if o.AuthURL != "" {
		c.AuthURL = ensureScheme(o.AuthURL)
	}
}

// Validate ensures required credentials are present
func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required (--username or NELLO_USERNAME)")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required (--password or NELLO_PASSWORD)")
	}
	return nil
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
