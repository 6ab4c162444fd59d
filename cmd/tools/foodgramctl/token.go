package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/foodgram-api/internal/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access token helpers",
	}

	var (
		cfg    auth.Config
		userID string
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Print an access token for a user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := auth.NewService(cfg)
			if err != nil {
				return err
			}
			token, expiresAt, err := svc.IssueAccessToken(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	flags := issue.Flags()
	flags.StringVar(&userID, "user", "", "user id to put in the token subject")
	flags.StringVar(&cfg.Secret, "secret", os.Getenv("JWT_SECRET"), "signing secret")
	flags.StringVar(&cfg.Issuer, "issuer", envOr("JWT_ISSUER", "foodgram-api"), "token issuer")
	flags.StringVar(&cfg.Audience, "audience", envOr("JWT_AUDIENCE", "foodgram-frontend"), "token audience")
	flags.DurationVar(&cfg.AccessTokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}
