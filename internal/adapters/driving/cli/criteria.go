package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

var (
	criteriaUser     string
	criteriaLabel    string
	criteriaKeywords []string
	criteriaLocation string
	criteriaWorkMode string
	criteriaInactive bool
	criteriaJSON     bool
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Manage the criteria gating recommendations",
	Long: `Criteria decide which postings surface on the recommended view and
which queries scheduled discovery runs. A posting must match at least
one keyword of an active criteria to be recommended.`,
}

var criteriaAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a criteria",
	RunE:  runCriteriaAdd,
}

var criteriaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's criteria",
	RunE:  runCriteriaList,
}

var criteriaDeleteCmd = &cobra.Command{
	Use:   "delete [criteria-id]",
	Short: "Delete a criteria",
	Args:  cobra.ExactArgs(1),
	RunE:  runCriteriaDelete,
}

func init() {
	criteriaCmd.PersistentFlags().StringVarP(&criteriaUser, "user", "u", "", "user ID owning the criteria (required)")
	_ = criteriaCmd.MarkPersistentFlagRequired("user")

	criteriaAddCmd.Flags().StringVar(&criteriaLabel, "label", "", "human-readable name, e.g. \"Backend roles\"")
	criteriaAddCmd.Flags().StringSliceVarP(&criteriaKeywords, "keywords", "k", nil, "title keywords, comma-separated (required)")
	criteriaAddCmd.Flags().StringVarP(&criteriaLocation, "location", "l", "", "optional location filter")
	criteriaAddCmd.Flags().StringVar(&criteriaWorkMode, "work-mode", "", "optional work mode filter (remote, hybrid, onsite)")
	criteriaAddCmd.Flags().BoolVar(&criteriaInactive, "inactive", false, "create the criteria deactivated")
	_ = criteriaAddCmd.MarkFlagRequired("keywords")

	criteriaListCmd.Flags().BoolVar(&criteriaJSON, "json", false, "output criteria as JSON")

	criteriaCmd.AddCommand(criteriaAddCmd)
	criteriaCmd.AddCommand(criteriaListCmd)
	criteriaCmd.AddCommand(criteriaDeleteCmd)
	rootCmd.AddCommand(criteriaCmd)
}

func runCriteriaAdd(cmd *cobra.Command, _ []string) error {
	if recommender == nil {
		return errors.New("recommend service not configured")
	}

	ctx := context.Background()
	criteria := domain.Criteria{
		UserID:   criteriaUser,
		Label:    criteriaLabel,
		Keywords: criteriaKeywords,
		Location: criteriaLocation,
		WorkMode: criteriaWorkMode,
		Active:   !criteriaInactive,
	}

	saved, err := recommender.SaveCriteria(ctx, criteria)
	if err != nil {
		return fmt.Errorf("save criteria failed: %w", err)
	}

	cmd.Printf("Created criteria %s (%s).\n", saved.ID, strings.Join(saved.Keywords, ", "))
	return nil
}

func runCriteriaList(cmd *cobra.Command, _ []string) error {
	if recommender == nil {
		return errors.New("recommend service not configured")
	}

	ctx := context.Background()

	rows, err := recommender.ListCriteria(ctx, criteriaUser)
	if err != nil {
		return fmt.Errorf("list criteria failed: %w", err)
	}

	if criteriaJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal criteria: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(rows) == 0 {
		cmd.Println("No criteria defined.")
		return nil
	}

	for i := range rows {
		c := &rows[i]

		state := "active"
		if !c.Active {
			state = "inactive"
		}

		label := c.Label
		if label == "" {
			label = "(unnamed)"
		}

		cmd.Printf("  %s  %s [%s]\n", c.ID, label, state)
		cmd.Printf("      keywords: %s\n", strings.Join(c.Keywords, ", "))
		if c.Location != "" {
			cmd.Printf("      location: %s\n", c.Location)
		}
	}

	return nil
}

func runCriteriaDelete(cmd *cobra.Command, args []string) error {
	if recommender == nil {
		return errors.New("recommend service not configured")
	}

	ctx := context.Background()

	if err := recommender.DeleteCriteria(ctx, criteriaUser, args[0]); err != nil {
		return fmt.Errorf("delete criteria failed: %w", err)
	}

	cmd.Printf("Deleted criteria %s.\n", args[0])
	return nil
}
