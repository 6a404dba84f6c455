package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/config"
)

var configSetCmd = LeafCommand{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	Example: `  eventorbit config set timezone Europe/Prague
  eventorbit config set week_start sunday`,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runConfigSet(cmd, homeDir, args[0], args[1])
	},
}.Build()

func init() {
	configSetCmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []string{"api.base_url", "api.session_cookie", "api.timeout_seconds", "timezone", "week_start", "log_level"}, cobra.ShellCompDirectiveNoFileComp
	}
}

func runConfigSet(cmd *cobra.Command, homeDir, key, value string) error {
	path := config.Path(homeDir)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	switch key {
	case "api.base_url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("api.base_url must start with http:// or https://")
		}
		cfg.API.BaseURL = strings.TrimRight(value, "/")
	case "api.session_cookie":
		cfg.API.SessionCookie = value
	case "api.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("api.timeout_seconds must be a positive number, got %q", value)
		}
		cfg.API.TimeoutSeconds = n
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("unknown timezone %q", value)
		}
		cfg.Timezone = value
	case "week_start":
		value = strings.ToLower(value)
		if value != "monday" && value != "sunday" {
			return fmt.Errorf("week_start must be monday or sunday, got %q", value)
		}
		cfg.WeekStart = value
	case "log_level":
		switch value {
		case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		default:
			return fmt.Errorf("unknown log level %q", value)
		}
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s set to %s", Primary(key), value)))
	return nil
}
