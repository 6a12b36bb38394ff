package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsaniceto14/investctl/internal/api"
	"github.com/rsaniceto14/investctl/internal/tui"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse investments in an interactive table",
		Long: `Open the interactive investment browser.

Navigate pages with ←/→, filter by category with t, search names with /,
and manage records with n, e and d. Press ? inside the browser for the
full key list.`,
		RunE: runBrowse,
	}

	// Flags
	cmd.Flags().IntP("page-size", "p", 10, "Records per page")
	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin-mocha)")

	// Bind to viper
	_ = viper.BindPFlag("browse.page_size", cmd.Flags().Lookup("page-size"))
	_ = viper.BindPFlag("browse.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	client, err := api.NewClient(api.Config{BaseURL: viper.GetString("api.base_url")})
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(),
		tui.WithService(client),
		tui.WithTheme(themes.GetTheme(viper.GetString("browse.theme"))),
		tui.WithPageSize(viper.GetInt("browse.page_size")),
	)
}
