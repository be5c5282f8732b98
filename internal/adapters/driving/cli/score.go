package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	scoreUser    string
	scorePosting string
	scoreJSON    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score postings against the user's profile",
	Long: `Computes relevance scores between the user's profile embedding and
their stored postings. Without --posting every eligible posting is
re-scored in one pass; with --posting only that posting is scored.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreUser, "user", "u", "", "user ID to score for (required)")
	scoreCmd.Flags().StringVarP(&scorePosting, "posting", "p", "", "score a single posting instead of the full batch")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "output results as JSON")
	_ = scoreCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scorer == nil {
		return errors.New("scoring service not configured")
	}

	ctx := context.Background()

	if scorePosting != "" {
		result, err := scorer.Score(ctx, scoreUser, scorePosting)
		if err != nil {
			return fmt.Errorf("scoring failed: %w", err)
		}

		if result == nil {
			cmd.Println("Posting not scored: profile or posting has no embedding yet.")
			return nil
		}
		if scoreJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			cmd.Println(string(data))
			return nil
		}
		cmd.Printf("Score: %d (similarity %.4f)\n", result.Score, result.Similarity)
		return nil
	}

	count, err := scorer.BatchScore(ctx, scoreUser)
	if err != nil {
		return fmt.Errorf("batch scoring failed: %w", err)
	}
	if scoreJSON {
		cmd.Printf("{\"scored\": %d}\n", count)
		return nil
	}
	cmd.Printf("Scored %d postings.\n", count)
	return nil
}
