package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/match-seat-reservation/internal/middleware"
	"github.com/iliyamo/match-seat-reservation/internal/utils"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint an access token",
	Long:  `Mint an HS256 access token signed with JWT_SECRET.  The user id becomes the claimant that owns held seats.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetInt("ttl")
		role = strings.ToUpper(role)
		if role != middleware.RoleUser && role != middleware.RoleAdmin {
			return fmt.Errorf("unknown role %q", role)
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		tok, err := utils.NewAccessToken(secret, args[0], role, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("role", middleware.RoleUser, "role claim: USER or ADMIN")
	tokenCmd.Flags().Int("ttl", ttlDefault(), "lifetime in minutes (default from ACCESS_TOKEN_TTL_MIN)")
}

func ttlDefault() int {
	if n, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_TTL_MIN")); err == nil && n > 0 {
		return n
	}
	return 15
}
