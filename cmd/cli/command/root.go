package command

// root.go defines the root command and the helpers shared by every subcommand.

import (
	"context"
	"fmt"
	"os"
	"time"

	"titlehub/cmd/cli/authentication"
	"titlehub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var apiURL string // global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "titlehub",
	Short: "titlehub - command line client for the titlehub catalog",
	Long: `titlehub talks to the titlehub API. With it you can:
- sign up with an email address and log in with the mailed confirmation code
- browse titles by category, genre, name or year
- review titles and comment on reviews
- manage categories, genres and titles (admins)

Use "titlehub [command] --help" to see the options of a command.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("TITLEHUB_API", "http://localhost:8080"), "API server URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(genreCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 15*time.Second)
}

// publicClient returns a client that sends the stored token when there is one.
func publicClient(ctx context.Context) *client.HTTPClient {
	c, err := authedClient(ctx)
	if err != nil {
		return client.NewHTTPClient(apiURL)
	}
	return c
}

// authedClient returns a client carrying the stored access token, refreshing it first when it has expired.
func authedClient(ctx context.Context) (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}

	httpClient := client.NewHTTPClient(apiURL)
	if creds.Expired(time.Now()) {
		resp, err := httpClient.RefreshToken(ctx, creds.RefreshToken)
		if err != nil {
			if client.IsUnauthorized(err) {
				return nil, authentication.ErrNotLoggedIn
			}
			return nil, fmt.Errorf("refresh session: %w", err)
		}
		creds.AccessToken = resp.AccessToken
		creds.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
		if err := authentication.StoreTokens(creds); err != nil {
			return nil, fmt.Errorf("save refreshed token: %w", err)
		}
	}
	httpClient.SetToken(creds.AccessToken)
	return httpClient, nil
}
