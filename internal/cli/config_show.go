package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/config"
)

var configShowCmd = LeafCommand{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return runConfigShow(cmd, a.cfg)
	},
}.Build()

var configPathCmd = LeafCommand{
	Use:   "path",
	Short: "Print the location of the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.Path(homeDir))
		return nil
	},
}.Build()

func runConfigShow(cmd *cobra.Command, cfg *config.Config) error {
	session := Silent("(not set)")
	if cfg.API.Session != "" {
		session = "********"
	}

	rows := [][2]string{
		{"api.base_url", cfg.API.BaseURL},
		{"api.session_cookie", cfg.API.SessionCookie},
		{"api.timeout_seconds", fmt.Sprintf("%d", cfg.API.TimeoutSeconds)},
		{"session", session},
		{"timezone", cfg.Zone()},
		{"week_start", cfg.WeekStart},
		{"log_level", cfg.LogLevel},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", Primary(fmt.Sprintf("%-20s", r[0])), r[1])
	}
	return nil
}
