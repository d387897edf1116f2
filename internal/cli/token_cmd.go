package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sla.service/internal/config"
	"sla.service/internal/session"
)

func newTokenCmd(cfg config.Config) *cobra.Command {
	var s session.Session
	var secret string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("a signing secret is required (set JWT_SECRET or --secret)")
			}
			tok, err := session.Issue([]byte(secret), s, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&s.WorkspaceID, "workspace", "", "Workspace ID")
	cmd.Flags().StringVar(&s.UserID, "user", "", "User ID")
	cmd.Flags().StringVar(&s.Email, "email", "", "User email")
	cmd.Flags().StringVar(&secret, "secret", cfg.JWTSecret, "HS256 signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}
