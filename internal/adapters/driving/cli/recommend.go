package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobscout-dev/jobscout/internal/core/ports/driving"
)

var (
	recommendUser string
	recommendJSON bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show the user's recommended postings",
	Long: `Shows postings with status "recommended" whose title matches at
least one keyword of an active criteria. Without active criteria the
view is empty: add criteria first with "jobscout criteria add".`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendUser, "user", "u", "", "user ID to show recommendations for (required)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output results as JSON")
	_ = recommendCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if recommender == nil {
		return errors.New("recommend service not configured")
	}

	ctx := context.Background()

	rows, err := recommender.RecommendedView(ctx, recommendUser)
	if err != nil {
		return fmt.Errorf("recommended view failed: %w", err)
	}

	if recommendJSON {
		return outputRecommendJSON(cmd, rows)
	}

	return outputRecommendTable(cmd, rows)
}

func outputRecommendJSON(cmd *cobra.Command, rows []driving.RecommendedPosting) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRecommendTable(cmd *cobra.Command, rows []driving.RecommendedPosting) error {
	if len(rows) == 0 {
		cmd.Println("No recommendations. Add active criteria and run discovery first.")
		return nil
	}

	cmd.Printf("Recommended postings (%d):\n", len(rows))
	cmd.Println()
	for i := range rows {
		p := &rows[i].Posting

		score := "  -"
		if rows[i].Score != nil {
			score = fmt.Sprintf("%3d", *rows[i].Score)
		}

		cmd.Printf("  [%s] %s - %s\n", score, p.Title, p.Company)
		if p.Location != "" {
			cmd.Printf("        %s\n", p.Location)
		}
	}

	return nil
}
