package main

import (
	"fmt"
	"io"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/config"
	"github.com/beka-birhanu/vinom-mazesolver/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazesolver/service/i"
	"github.com/spf13/cobra"
)

var (
	tokenClient string        // API client name
	tokenTTL    time.Duration // Token lifetime
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for the protected maze endpoints",
	Long: `Signs a bearer token with JWT_SECRET and JWT_ISSUER for the given client.

Example:
  mazesolver token --client ci-runner --ttl 720h`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, issuer := config.LoadTokenConfig()
		return runToken(cmd.OutOrStdout(), token.NewJwtService(secret, issuer), tokenClient, tokenTTL)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenClient, "client", "", "Name of the API client")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("client")
}

func runToken(stdout io.Writer, ts i.Tokenizer, client string, ttl time.Duration) error {
	signed, err := token.IssueClientToken(ts, client, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, signed)
	return err
}
