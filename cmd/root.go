// ABOUTME: Root command for the nello CLI
// ABOUTME: Handles global flags and API client construction

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nello-io/nello-go/config"
	"github.com/nello-io/nello-go/logger"
	"github.com/nello-io/nello-go/nello"
)

var (
	username   string
	password   string
	location   string
	clientID   string
	apiURL     string
	authURL    string
	jsonOutput bool
	debug      bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "nello",
	Short: "CLI for the Nello door intercom",
	Long: `nello is a command-line interface for the Nello door-intercom service.

Credentials can be passed via flags or environment variables (a .env file in
the working directory is honored):
  NELLO_USERNAME   Account username
  NELLO_PASSWORD   Account password
  NELLO_LOCATION   Default target location ID (default: first listed)
  NELLO_CLIENT_ID  OAuth2 client ID; selects the public API variant
  NELLO_API_URL    API base URL override
  NELLO_AUTH_URL   OAuth2 token URL override (public variant only)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&username, "username", "u", "", "Account username (overrides NELLO_USERNAME)")
	pf.StringVarP(&password, "password", "p", "", "Account password (overrides NELLO_PASSWORD)")
	pf.StringVarP(&location, "location", "l", "", "Target location ID (default: first listed)")
	pf.StringVar(&clientID, "client-id", "", "OAuth2 client ID; selects the public API variant")
	pf.StringVar(&apiURL, "api-url", "", "API base URL (overrides NELLO_API_URL)")
	pf.StringVar(&authURL, "auth-url", "", "OAuth2 token URL (overrides NELLO_AUTH_URL)")
	pf.BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	pf.BoolVarP(&debug, "debug", "D", false, "Enable debug logging")
}

// loadConfig resolves configuration with flag > env > default priority
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	cfg.Merge(&config.Config{
		Username: username,
		Password: password,
		Location: location,
		ClientID: clientID,
		APIURL:   apiURL,
		AuthURL:  authURL,
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newIntercom builds the API client matching the configured variant
func newIntercom(cfg *config.Config) nello.Intercom {
	if cfg.PublicVariant() {
		p := nello.NewPublicClient(cfg.ClientID, cfg.Username, cfg.Password)
		if cfg.APIURL != "" {
			p.SetBaseURL(cfg.APIURL)
		}
		if cfg.AuthURL != "" {
			p.SetTokenURL(cfg.AuthURL)
		}
		return p
	}
	c := nello.NewClient(cfg.Username, cfg.Password)
	if cfg.APIURL != "" {
		c.SetBaseURL(cfg.APIURL)
	}
	return c
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
