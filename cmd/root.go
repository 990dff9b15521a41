package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bastio-ai/gvl/internal/config"
	"github.com/bastio-ai/gvl/internal/editor"
	"github.com/bastio-ai/gvl/internal/files"
	"github.com/bastio-ai/gvl/internal/launcher"
	"github.com/bastio-ai/gvl/internal/logging"
	"github.com/bastio-ai/gvl/internal/ui"
)

var (
	configFlag     string
	editorFlag     string
	serverNameFlag string
	logLevelFlag   string
	dryRunFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "gvl [flags] [--] PATH...",
	Short: "Open files in a shared gvim instance",
	Long: `gvl opens files in a single shared gvim window. If gvim is not running
it is started with the first file; every other file is sent to the running
instance as a new tab.

Directories are expanded recursively. At most 20 paths are accepted and the
files together must not exceed 300KB.

Flags must come before the first path; everything after it is taken as a
path. Use -- to pass a first path that starts with a dash.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLaunch,
}

// Execute runs the root command and exits with its status
func Execute() {
	// An interrupt cuts the editor warm-up wait short
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(int(exitCode(err, os.Stderr)))
}

// exitCode reports err if it has not been reported yet and returns the process exit status
func exitCode(err error, stderr io.Writer) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	ui.Errorf(stderr, "%v", err)
	return ExitFailure
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(versionTemplate())

	// Paths starting with a dash after the first path are not flags
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "config file path (default ~/.config/gvl/config.yaml)")
	rootCmd.Flags().StringVar(&editorFlag, "editor", "", "editor executable (overrides config)")
	rootCmd.Flags().StringVar(&serverNameFlag, "server-name", "", "remote server name (overrides config)")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "print what would be opened as YAML and exit")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	stderr := cmd.ErrOrStderr()
	l := launcher.New(launcher.Options{
		Fs:           afero.NewOsFs(),
		Spawner:      editor.ExecSpawner{},
		ProcessTable: editor.SystemProcessTable{},
		Editor:       cfg.Editor,
		ServerName:   cfg.ServerName,
		Logger:       logger,
		Stderr:       stderr,
	})

	if dryRunFlag {
		plan, err := l.Plan(cmd.Context(), args)
		if err != nil {
			return reportFatal(cmd, cfg, err)
		}
		out, err := plan.YAML()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	// Per-file failures are already reported; they never change the exit code
	if _, err := l.Run(cmd.Context(), args); err != nil {
		return reportFatal(cmd, cfg, err)
	}
	return nil
}

// loadConfig reads --config when given, otherwise the default config file
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.LoadFrom(configFlag)
	}
	return config.Load()
}

// applyFlags lets explicitly set flags override the loaded config
func applyFlags(cfg *config.Config) {
	if editorFlag != "" {
		cfg.Editor = editorFlag
	}
	if serverNameFlag != "" {
		cfg.ServerName = serverNameFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
}

// reportFatal prints why the whole request was rejected and converts err to exit status 1
func reportFatal(cmd *cobra.Command, cfg *config.Config, err error) error {
	stderr := cmd.ErrOrStderr()
	switch {
	case errors.Is(err, launcher.ErrEditorNotFound):
		ui.Errorf(stderr, "It seems you don't have the %s executable. To begin with, please install it.", cfg.Editor)
	case errors.Is(err, files.ErrTooManyEntries):
		ui.Errorf(stderr, "It seems you are trying to expand directories with a complicated structure, but we regard this as an error.")
		ui.Hint(stderr, "Please break down the arguments and run gvl on a smaller number of items.")
	default:
		ui.Errorf(stderr, "%v", err)
	}
	return &ExitError{Code: ExitFailure, Err: err}
}
