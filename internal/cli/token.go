package cli

import (
	"Ignite/internal/auth"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newTokenCommand() *cobra.Command {
	var username, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Long:  `Sign a token with JWT_SECRET for use with --token or IGNITE_TOKEN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			role = strings.ToUpper(role)
			if role != auth.RoleUser && role != auth.RoleAdmin {
				return fmt.Errorf("role must be %s or %s", auth.RoleUser, auth.RoleAdmin)
			}

			signer, err := auth.NewSigner(a.cfg.JWTSecret, a.cfg.JWTIssuer, a.cfg.TokenTTL)
			if err != nil {
				return err
			}
			token, err := signer.Issue(username, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "username placed in the sub claim (required)")
	cmd.Flags().StringVar(&role, "role", auth.RoleUser, "role claim: USER or ADMIN")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
