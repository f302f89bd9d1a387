package command

// auth.go handles signup, login with a confirmation code, logout and whoami.

import (
	"fmt"
	"time"

	"titlehub/cmd/cli/authentication"
	"titlehub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Sign up with an email address, then log in with the confirmation code mailed to it.`,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Request a confirmation code for an email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.NewHTTPClient(apiURL).Signup(ctx, email)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		printSuccess("Confirmation code sent to %s", resp.Email)
		fmt.Printf("Run 'titlehub auth login --email %s --code <code>' once it arrives.\n", resp.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange the confirmation code for tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		code, _ := cmd.Flags().GetString("code")
		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.NewHTTPClient(apiURL).ObtainToken(ctx, email, code)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			Email:        email,
			ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("failed to save tokens: %w", err)
		}
		printSuccess("Logged in as %s", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the refresh token and forget the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			printSuccess("Already logged out")
			return nil
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := client.NewHTTPClient(apiURL).RevokeToken(ctx, creds.RefreshToken); err != nil {
			fmt.Println(warning("could not revoke the refresh token: " + err.Error()))
		}
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("failed to clear tokens: %w", err)
		}
		printSuccess("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := authedClient(ctx)
		if err != nil {
			return err
		}
		me, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", heading(me.Username), faint("("+me.Role+")"))
		if me.Bio != "" {
			fmt.Println(me.Bio)
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)

	signupCmd.Flags().StringP("email", "e", "", "Email address to register")
	signupCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("email", "e", "", "Registered email address")
	loginCmd.Flags().StringP("code", "c", "", "Confirmation code from the signup mail")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("code")
}
