package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "leadscout/internal/jwt_token"
	"leadscout/internal/platform/config"
	id "leadscout/pkg/domain"
)

// tokenCmd mints an operator access token with the server's signing key, read
// from the same config file and LEADSCOUT_* environment the server uses.
func tokenCmd() *cobra.Command {
	var (
		tenant string
		user   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator access token for a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Server.JWTSigningKey.Value() == "" {
				return errors.New("server.jwt_signing_key is not configured")
			}
			tenantID, err := id.ParseTenantID(tenant)
			if err != nil {
				return err
			}
			userID := id.NewUserID()
			if user != "" {
				if userID, err = id.ParseUserID(user); err != nil {
					return err
				}
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}

			jwt := jwttoken.NewJWTService(cfg.Server.JWTSigningKey.Value(), cfg.Server.JWTIssuer)
			token, err := jwt.GenerateAccessToken(tenantID, userID, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID the token is scoped to")
	cmd.Flags().StringVar(&user, "user", "", "operator user ID (random when omitted)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
