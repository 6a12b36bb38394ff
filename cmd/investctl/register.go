package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/rsaniceto14/investctl/internal/api"
	"github.com/rsaniceto14/investctl/internal/cli"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account on the investment service",
		Long: `Register a new account with the investment service.

The username is read from the terminal and the password is read twice
without echo.`,
		RunE: runRegister,
	}
}

func runRegister(cmd *cobra.Command, _ []string) error {
	client, err := api.NewClient(api.Config{BaseURL: viper.GetString("api.base_url")})
	if err != nil {
		return err
	}

	fmt.Print(cli.FormatPrompt("Username"))
	username, err := cli.NewLineReader(os.Stdin).ReadLine(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	password, err := readPassword("Password")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	confirm, err := readPassword("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := client.Register(cmd.Context(), username, password); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account %q registered", username)))
	return nil
}

// readPassword prompts for a password without echoing it back.
func readPassword(label string) (string, error) {
	fmt.Print(cli.FormatPrompt(label))
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
