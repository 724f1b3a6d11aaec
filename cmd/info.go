// ABOUTME: Info command for the nello CLI
// ABOUTME: Logs in and prints the authenticated account

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nello-io/nello-go/nello"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the authenticated account",
	Long: `Log in and print the account details the server returned: user ID,
name, and the role held on each location.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := runInfo(ctx, os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// runInfo prints the account and returns the process exit code
func runInfo(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	ic := newIntercom(cfg)
	if err := ic.Login(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	accounter, ok := ic.(interface{ Account() *nello.Account })
	if !ok || accounter.Account() == nil {
		fmt.Fprintln(w, "Account details are not exposed by the public API")
		return 0
	}
	account := accounter.Account()

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(account, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "User ID:  %s\n", account.UserID)
	fmt.Fprintf(w, "Username: %s\n", account.Username)
	fmt.Fprintf(w, "Name:     %s %s\n", account.FirstName, account.LastName)
	for _, r := range account.Roles {
		state := "inactive"
		if r.IsActive {
			state = "active"
		}
		fmt.Fprintf(w, "Role:     %s on %s (%s)\n", r.Role, r.LocationID, state)
	}
	return 0
}
