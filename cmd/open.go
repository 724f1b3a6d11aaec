// ABOUTME: Open command for the nello CLI
// ABOUTME: Rings the buzzer at the target location

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

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the door",
	Long: `Open the door at the target location.

Without --location the first location returned by the server is used.

Exit codes:
  0 - Door opened
  1 - The server refused to open the door
  2 - Error (login failure, connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := runOpen(ctx, os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// runOpen opens the door and returns the process exit code
func runOpen(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	opened, err := newIntercom(cfg).OpenDoor(ctx, cfg.Location)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.Marshal(map[string]bool{"success": opened})
		fmt.Fprintln(w, string(data))
	} else if opened {
		fmt.Fprintln(w, "Open door: SUCCESS!")
	} else {
		fmt.Fprintln(w, "Failed to open door")
	}

	if !opened {
		return 1
	}
	return 0
}
