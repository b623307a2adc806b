package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/content"
)

var contentDir string

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect portfolio content",
}

var contentCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate portfolio content, then print a summary",
	Long: `Loads portfolio documents the way the server does and reports record counts.
Without --dir (or CONTENT_DIR) the embedded portfolio is checked.`,
	RunE: runContentCheck,
}

func init() {
	contentCheckCmd.Flags().StringVar(&contentDir, "dir", "", "Content directory (overrides CONTENT_DIR)")
	contentCmd.AddCommand(contentCheckCmd)
	rootCmd.AddCommand(contentCmd)
}

func runContentCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}

	repo, err := content.Open(cfg.Content.Dir, cfg.Content.Pattern, zap.NewNop())
	if err != nil {
		return fmt.Errorf("content check failed: %w", err)
	}

	out, err := sonic.ConfigStd.MarshalIndent(repo.Summary(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
