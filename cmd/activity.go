// ABOUTME: Activity command for the nello CLI
// ABOUTME: Prints the event log of the target location

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nello-io/nello-go/nello"
)

var (
	rawOutput    bool
	reverseOrder bool
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the activity log",
	Long: `Show the activity log of the target location, newest entries in the
order the server returns them.

Exit codes:
  0 - Log printed
  2 - Error (login failure, connectivity, unsupported API variant)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := runActivity(ctx, os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the server response JSON untouched")
	activityCmd.Flags().BoolVar(&reverseOrder, "reverse", false, "Invert the entry order")
}

// runActivity prints the activity log and returns the process exit code
func runActivity(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	lister, ok := newIntercom(cfg).(nello.ActivityLister)
	if !ok {
		fmt.Fprintln(w, "Error: activity logs are not available on the public API")
		return 2
	}

	if rawOutput {
		body, err := lister.GetActivityRaw(ctx, cfg.Location)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, string(body))
		return 0
	}

	activities, err := lister.GetActivity(ctx, cfg.Location)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if reverseOrder {
		slices.Reverse(activities)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(activities, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	for _, a := range activities {
		fmt.Fprintf(w, "%s %s\n", a.Date, a.Description)
	}
	return 0
}
