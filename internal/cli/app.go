package cli

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/api"
	"github.com/eventorbit/eventorbit/internal/config"
)

// app is what every command needs after startup.
type app struct {
	homeDir string
	cfg     *config.Config
}

// loadApp resolves the home directory and loads the config. Unless
// --verbose was given, the configured log level replaces the default.
func loadApp(cmd *cobra.Command) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	path := config.Path(homeDir)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		zerolog.SetGlobalLevel(cfg.Level())
	}
	log.Debug().Str("path", path).Str("zone", cfg.Zone()).Msg("config loaded")

	return &app{homeDir: homeDir, cfg: cfg}, nil
}

// scheduleAPI is the part of the backend the sync commands use.
type scheduleAPI interface {
	FetchSchedules(ctx context.Context, eventID string) ([]api.ScheduleRecord, error)
	SaveSchedules(ctx context.Context, eventID string, records []api.ScheduleRecord) error
	CreateEvent(ctx context.Context, payload api.EventPayload) (string, error)
}

// newScheduleAPI builds the backend client from cfg.
func newScheduleAPI(cfg *config.Config) scheduleAPI {
	return api.NewClient(cfg.API.BaseURL,
		api.WithSession(cfg.API.SessionCookie, cfg.API.Session),
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		api.WithLogger(log.Logger),
	)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
