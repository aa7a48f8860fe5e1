package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"countdown-cli/internal/format"
	"countdown-cli/internal/logging"
	"countdown-cli/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	File         string
	Format       string
	PrettyJSON   bool
	LogLevel     string
	LogFile      string
	SettingsPath string

	settings store.Settings
	logger   *slog.Logger
	logOut   io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "countdown",
		Short:        "Edit the config.json of a PyPortal countdown display",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Edit ./config.json in the interactive editor
  countdown

  # Edit the file on a mounted SD card
  countdown --file /media/CIRCUITPY/config.json

  # Scriptable commands
  countdown events list --format table
  countdown events add --title Launch --year 2026 --month 12 --day 24 --hour 18 --minute 0
  countdown events move 0 2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logOut != nil {
			_ = app.logOut.Close()
			app.logOut = nil
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("COUNTDOWN_FILE", ""), "Path to the device config file (default: settings file, then ./config.json)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("COUNTDOWN_FORMAT", ""), "Output format (json|edn|table)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output and saved files")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("COUNTDOWN_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write logs to this file (the editor defaults to ~/.countdown/countdown.log)")
	cmd.PersistentFlags().StringVar(&app.SettingsPath, "settings", envOr("COUNTDOWN_SETTINGS", ""), "Settings file (default: ~/.countdown/settings.yaml)")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newSecretsCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// init resolves settings, fills unset flags from them, and sets up logging.
func (app *App) init(cmd *cobra.Command) error {
	s, err := store.LoadSettings(app.SettingsPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.settings = s

	if strings.TrimSpace(app.File) == "" {
		app.File = s.File
	}
	if strings.TrimSpace(app.Format) == "" {
		app.Format = s.Format
	}
	if strings.TrimSpace(app.LogLevel) == "" {
		app.LogLevel = s.LogLevel
	}
	if !cmd.Flags().Changed("pretty") && s.Pretty {
		app.PrettyJSON = true
	}

	var w io.Writer = cmd.ErrOrStderr()
	if app.LogFile != "" {
		f, err := logging.OpenFile(app.LogFile)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("open log file: %w", err))
		}
		app.logOut = f
		w = f
	}
	app.logger = logging.Setup(app.LogLevel, w)
	return nil
}

func (app *App) configFile() store.ConfigFile {
	return store.ConfigFile{Path: app.File}
}

// openJournal returns nil when history is disabled or the journal cannot be opened;
// history is never allowed to block editing.
func (app *App) openJournal(ctx context.Context) *store.Journal {
	if !app.settings.History {
		return nil
	}
	path, err := store.JournalPath()
	if err != nil {
		app.logger.Warn("history disabled", "err", err)
		return nil
	}
	j, err := store.OpenJournal(ctx, path, app.settings.HistoryLimit)
	if err != nil {
		app.logger.Warn("history disabled", "path", path, "err", err)
		return nil
	}
	return j
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
