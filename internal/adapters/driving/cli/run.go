package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the discovery scheduler until interrupted",
	Long: `Starts the periodic discovery scheduler: every interval it runs one
discovery pass per user with active criteria, and re-scores postings as
batches land and profiles change. Stops cleanly on SIGINT or SIGTERM.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if scheduler == nil || rescorer == nil {
		return errors.New("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repair scores that went stale while the process was down.
	rescorer.RepairAll(ctx)

	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler failed: %w", err)
	}

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")
	<-ctx.Done()

	cmd.Println("Shutting down...")
	scheduler.Stop()
	return nil
}
