package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apppkg "github.com/kk-code-lab/rpick/internal/app"
	"github.com/kk-code-lab/rpick/internal/config"
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	"github.com/kk-code-lab/rpick/internal/logging"
	"github.com/kk-code-lab/rpick/internal/shellsetup"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/spf13/cobra"
)

// errCancelled ends the process with exit status 1 and no message.
var errCancelled = errors.New("cancelled")

const (
	exitCancelled = 1
	exitError     = 2
)

type cliFlags struct {
	configFile string
	mode       string
	pattern    string
	output     string
	logFile    string
	logLevel   string
	hidden     bool
	noWatch    bool
}

// pickerRunner runs an interactive session; tests replace it.
type pickerRunner func(cfg *config.Config) (apppkg.Result, error)

func execute(args []string, stdout, stderr io.Writer) int {
	return executeWith(args, stdout, stderr, runPicker)
}

func executeWith(args []string, stdout, stderr io.Writer, run pickerRunner) int {
	cmd := newRootCmd(run)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errCancelled) {
			return exitCancelled
		}
		fmt.Fprintf(stderr, "rpick: %v\n", err)
		return exitError
	}
	return 0
}

func newRootCmd(run pickerRunner) *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "rpick [start-dir]",
		Short: "Pick a file or directory in the terminal",
		Long: `rpick opens a terminal file picker and prints the chosen path.

The path goes to stdout (or --output), so rpick composes with command
substitution:

    cd "$(rpick --mode directory)"
    vim "$(rpick --pattern '*.go')"

Exit status is 0 when a path was chosen, 1 when the picker was cancelled
and 2 on errors.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, args)
			if err != nil {
				return err
			}

			result, err := run(cfg)
			if err != nil {
				return err
			}
			if !result.Selected {
				return errCancelled
			}
			return writeResult(cmd.OutOrStdout(), flags.output, result.Path)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.mode, "mode", "m", "file", "What to pick: file or directory")
	f.StringVarP(&flags.pattern, "pattern", "p", "", "Glob the chosen entry must match, e.g. '*.go'")
	f.BoolVarP(&flags.hidden, "hidden", "a", false, "Show hidden entries")
	f.StringVarP(&flags.output, "output", "o", "", "Write the chosen path to this file instead of stdout")
	f.BoolVar(&flags.noWatch, "no-watch", false, "Do not reload when the directory changes")
	f.StringVar(&flags.logFile, "log-file", "", "Append logs to this file")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error or disabled")
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Configuration file (default $XDG_CONFIG_HOME/rpick/config.yaml)")

	rootCmd.AddCommand(newSetupCmd())
	return rootCmd
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [shell]",
		Short: "Print a shell function that cds into a picked directory",
		Long: `Print the "` + shellsetup.FunctionName + `" shell function. Add it to your shell profile:

    eval "$(rpick setup)"          # bash, zsh
    rpick setup fish | source      # fish`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) == 1 {
				shell = args[0]
			}
			_, err := shellsetup.WriteSetup(cmd.OutOrStdout(), shell, shellsetup.Config{})
			return err
		},
	}
}

// resolveConfig layers explicitly set flags and the start-dir argument over
// the loaded configuration.
func resolveConfig(cmd *cobra.Command, flags *cliFlags, args []string) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("mode") {
		mode, err := statepkg.ParseBrowserMode(flags.mode)
		if err != nil {
			return nil, err
		}
		cfg.Mode = mode.String()
	}
	if changed("pattern") {
		cfg.Pattern = flags.pattern
	}
	if changed("hidden") {
		cfg.ShowHidden = flags.hidden
	}
	if changed("no-watch") {
		cfg.Watch = !flags.noWatch
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if len(args) == 1 {
		cfg.StartDir = args[0]
	}
	if cfg.StartDir == "" {
		cwd, err := apppkg.GetCwd()
		if err != nil {
			return nil, err
		}
		cfg.StartDir = cwd
	}
	// "~" is expanded by the application.
	if !strings.HasPrefix(cfg.StartDir, "~") {
		abs, err := filepath.Abs(cfg.StartDir)
		if err != nil {
			return nil, fmt.Errorf("resolve start directory %q: %w", cfg.StartDir, err)
		}
		cfg.StartDir = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := fsutil.CompilePattern(cfg.Pattern); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPicker(cfg *config.Config) (apppkg.Result, error) {
	logger, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return apppkg.Result{}, err
	}
	defer func() {
		_ = closeLog()
	}()

	mode, err := statepkg.ParseBrowserMode(cfg.Mode)
	if err != nil {
		return apppkg.Result{}, err
	}

	host := fsutil.NewLocalHost(fsutil.WithHidden(cfg.ShowHidden))
	app, err := apppkg.NewApplication(host, apppkg.Options{
		Browser: statepkg.Options{
			Path:       cfg.StartDir,
			Pattern:    cfg.Pattern,
			Mode:       mode,
			ShowHidden: cfg.ShowHidden,
			Logger:     logger,
		},
		Watch:         cfg.Watch,
		WatchDebounce: cfg.WatchDebounce,
		DoubleClick:   cfg.DoubleClick,
	})
	if err != nil {
		return apppkg.Result{}, fmt.Errorf("initializing picker: %w", err)
	}

	app.Run()
	result := app.Result()
	// Restore the terminal before the caller prints the result.
	if err := app.Close(); err != nil {
		logger.Warn().Err(err).Msg("close picker")
	}
	return result, nil
}

// writeResult prints path, or writes it with owner-only permissions when
// output names a file.
func writeResult(stdout io.Writer, output, path string) error {
	if output == "" {
		_, err := fmt.Fprintln(stdout, path)
		return err
	}
	if err := os.WriteFile(output, []byte(path), 0o600); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
