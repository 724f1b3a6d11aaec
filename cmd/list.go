// ABOUTME: List command for the nello CLI
// ABOUTME: Prints the locations the account can access

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
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available locations",
	Long: `List the locations the account can access, one per line, in server
order. The first entry is the default target for open and activity.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := runList(ctx, os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// runList prints the locations and returns the process exit code
func runList(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	locations, err := newIntercom(cfg).ListLocations(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(locations, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	for _, loc := range locations {
		fmt.Fprintln(w, loc)
	}
	return 0
}
