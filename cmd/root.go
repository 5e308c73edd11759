package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/cora-hours/internal/config"
	"github.com/Tiliavir/cora-hours/internal/coraapi"
	"github.com/Tiliavir/cora-hours/internal/db"
	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/render"
	"github.com/Tiliavir/cora-hours/internal/storage"
)

var (
	cfgPath  string
	debugLog bool
	offline  bool
	noColor  bool

	cfg *config.Config
)

// skipConfig marks commands that must run without a loadable config.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "cora",
	Short: "cora – register consultant hours against the CORA API",
	Long: `cora registers consultant hours against the CORA API.

Entries are checked for overlaps with your other entries of the same day and
classified as extra hours against your working shift before they are sent.
A local cache (JSON day files or SQLite) keeps the entries available offline.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, render.Error("Error: "+err.Error()))
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Config file (default ~/.config/cora/config.toml)")
	pf.BoolVar(&debugLog, "debug", false, "Enable debug logging")
	pf.BoolVar(&offline, "offline", false, "Work from the local cache only")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup configures logging and colors, then loads the config.
func setup(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if debugLog {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor})

	if noColor {
		render.DisableColor()
	}

	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}
	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return usageError(err)
	}
	cfg = loaded
	log.Debug().Str("path", path).Str("backend", cfg.Storage.Backend).Msg("config loaded")
	return nil
}

// session builds the signed-in consultant from the config.
func session() hours.Session {
	s := cfg.Session
	return hours.Session{
		ConsultantID: s.ConsultantID,
		Login:        strings.TrimSpace(s.Login),
		Name:         strings.TrimSpace(s.Name),
		Role:         strings.ToUpper(strings.TrimSpace(s.Role)),
		Shift:        s.Shift,
		Modules:      s.Modules,
		DailyTarget: hours.TargetFor(s.Login, cfg.Calendar.ReducedTargetUsers,
			cfg.Calendar.DailyTargetHours, cfg.Calendar.ReducedTargetHours),
	}
}

// openStore opens the configured cache. The returned func closes it.
func openStore() (hours.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating database directory: %w", err)
		}
		s, err := db.New(cfg.Storage.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return storage.NewFiles(cfg.Storage.Dir), func() {}, nil
	}
}

// apiClient returns nil when running offline.
func apiClient(ctx context.Context) (*coraapi.Client, error) {
	if offline {
		return nil, nil
	}
	tokenPath, err := coraapi.DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	token, err := coraapi.ResolveToken(cfg.API.Token, tokenPath)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring stored token")
	}
	s := session()
	return coraapi.NewClient(ctx, coraapi.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   token,
		Timeout: cfg.Timeout(),
		Identity: coraapi.Identity{
			ConsultantID: s.ConsultantID,
			Login:        s.Login,
			Name:         s.Name,
			Role:         s.Role,
		},
		Logger: log.Logger,
	}), nil
}

// newService wires the hours service for the current config. The returned
// func releases the cache.
func newService(ctx context.Context) (*hours.Service, func(), error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, nil, storageError(err)
	}
	client, err := apiClient(ctx)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	var remote hours.Remote
	if client != nil {
		remote = client
	}
	return hours.NewService(session(), store, remote, log.Logger), closeStore, nil
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// usageError marks bad input: exit code 1.
func usageError(err error) error {
	return &exitError{code: 1, err: err}
}

// storageError marks cache or API failures: exit code 2.
func storageError(err error) error {
	return &exitError{code: 2, err: err}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// classify wraps a service error: validation failures exit with 1, cache and
// API failures with 2.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	if hours.IsValidation(err) {
		return usageError(err)
	}
	return storageError(err)
}
