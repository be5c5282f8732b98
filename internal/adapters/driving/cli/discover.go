package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

var (
	discoverUser     string
	discoverLocation string
	discoverLimit    int
	discoverJSON     bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover [query]",
	Short: "Discover job postings from all enabled boards",
	Long: `Runs the query against every enabled job board, deduplicates the
results and persists them for the user. Re-running the same query is
safe: known postings are refreshed, never duplicated.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVarP(&discoverUser, "user", "u", "", "user ID to persist postings for (required)")
	discoverCmd.Flags().StringVarP(&discoverLocation, "location", "l", "", "narrow the search geographically")
	discoverCmd.Flags().IntVarP(&discoverLimit, "limit", "n", 0, "cap postings per board (0 = board default)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "output results as JSON")
	_ = discoverCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	query := args[0]

	if discoverer == nil {
		return errors.New("discovery service not configured")
	}

	ctx := context.Background()
	opts := domain.DiscoveryOptions{
		Location: discoverLocation,
		Limit:    discoverLimit,
	}

	result, err := discoverer.Run(ctx, discoverUser, query, opts)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if discoverJSON {
		return outputDiscoveryJSON(cmd, result)
	}

	return outputDiscoveryTable(cmd, result)
}

func outputDiscoveryJSON(cmd *cobra.Command, result *domain.DiscoveryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDiscoveryTable(cmd *cobra.Command, result *domain.DiscoveryResult) error {
	if len(result.Postings) == 0 && len(result.Errors) == 0 {
		cmd.Println("No postings found.")
		return nil
	}

	cmd.Printf("Saved %d postings (%d reported by boards).\n", len(result.Postings), result.TotalFound)
	cmd.Println()
	for i := range result.Postings {
		p := &result.Postings[i]
		cmd.Printf("  [%d] %s - %s\n", i+1, p.Title, p.Company)
		if p.Location != "" {
			cmd.Printf("      %s", p.Location)
			if p.WorkMode != "" {
				cmd.Printf(" (%s)", p.WorkMode)
			}
			cmd.Println()
		}
		if p.SalarySnippet != "" {
			cmd.Printf("      %s\n", p.SalarySnippet)
		}
	}

	if len(result.Errors) > 0 {
		cmd.Println()
		cmd.Printf("%d board(s) reported errors:\n", len(result.Errors))
		for _, e := range result.Errors {
			cmd.Printf("  - %s\n", e)
		}
	}

	return nil
}
