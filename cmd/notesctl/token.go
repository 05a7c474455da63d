package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"elevennote/internal/notes/adapters/services"
)

func newTokenCmd() *cobra.Command {
	var (
		secret, userID, username string
		ttl                      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token",
		Long: `token signs an HS256 access token with the given secret. It is meant for
local development against a notes service that shares the same JWT_SECRET_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := services.SignToken(secret, userID, username, ttl, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret")
	cmd.Flags().StringVar(&userID, "user", "", "user id to put into the token")
	cmd.Flags().StringVar(&username, "username", "", "optional username claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
