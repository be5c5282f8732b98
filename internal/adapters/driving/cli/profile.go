package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

var (
	profileUser     string
	profileHeadline string
	profileFile     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the candidate profile postings are scored against",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the user's profile from a resume file",
	Long: `Embeds the resume text and stores it as the user's profile. Every
stored posting with a vector is then re-scored against the new profile.`,
	RunE: runProfileSet,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user's profile",
	RunE:  runProfileShow,
}

func init() {
	profileCmd.PersistentFlags().StringVarP(&profileUser, "user", "u", "", "user ID owning the profile (required)")
	_ = profileCmd.MarkPersistentFlagRequired("user")

	profileSetCmd.Flags().StringVar(&profileHeadline, "headline", "", "short self-description, e.g. \"Senior Go Engineer\"")
	profileSetCmd.Flags().StringVarP(&profileFile, "resume", "r", "", "path to the resume text file (required)")
	_ = profileSetCmd.MarkFlagRequired("resume")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	if scorer == nil || profiles == nil {
		return errors.New("profile services not configured")
	}

	raw, err := os.ReadFile(profileFile)
	if err != nil {
		return fmt.Errorf("read resume file: %w", err)
	}
	resume := strings.TrimSpace(string(raw))
	if resume == "" {
		return fmt.Errorf("%w: resume file is empty", domain.ErrEmptyInput)
	}

	ctx := context.Background()

	vec, err := scorer.Embed(ctx, resume)
	if err != nil {
		return fmt.Errorf("embed resume failed: %w", err)
	}

	profile := domain.Profile{
		UserID:     profileUser,
		Headline:   profileHeadline,
		ResumeText: resume,
		Embedding:  vec,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile failed: %w", err)
	}

	if bus != nil {
		bus.Publish(ctx, domain.ProfileUpdated{UserID: profileUser})
	}

	cmd.Printf("Profile saved for %s (%d-dimensional embedding).\n", profileUser, len(vec))
	return nil
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profiles == nil {
		return errors.New("profile store not configured")
	}

	ctx := context.Background()

	profile, err := profiles.Get(ctx, profileUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No profile set. Create one with \"jobscout profile set\".")
			return nil
		}
		return fmt.Errorf("get profile failed: %w", err)
	}

	if profile.Headline != "" {
		cmd.Printf("%s\n\n", profile.Headline)
	}
	cmd.Println(profile.ResumeText)
	cmd.Println()
	if profile.HasEmbedding() {
		cmd.Printf("Embedded (%d dimensions), updated %s.\n",
			len(profile.Embedding), profile.UpdatedAt.Format(time.RFC3339))
	} else {
		cmd.Println("Not embedded yet: postings cannot be scored against this profile.")
	}
	return nil
}
