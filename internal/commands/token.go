package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/middleware"
	"github.com/SscSPs/budget_reconciler/internal/platform/config"
	"github.com/spf13/cobra"
)

// newTokenCommand issues API tokens. The service has no login flow; operators
// mint tokens scoped to the workspaces a caller may read.
func newTokenCommand() *cobra.Command {
	var subject string
	var workspaces []string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			token, err := middleware.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, subject, workspaces, ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user ID the token is issued to (required)")
	_ = cmd.MarkFlagRequired("subject")
	cmd.Flags().StringSliceVarP(&workspaces, "workspace", "w", nil, "workspace the token grants access to (repeatable)")
	_ = cmd.MarkFlagRequired("workspace")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
