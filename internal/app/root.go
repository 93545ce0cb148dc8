package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/config"
	"github.com/blackwell-systems/optibridge/internal/unified"
	"github.com/blackwell-systems/optibridge/internal/util"
)

var (
	cfg    *config.Config
	client *backend.Client

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagDebug         bool
)

var rootCmd = &cobra.Command{
	Use:   "optibridge",
	Short: "Upload images to Cloudinary or Cloudflare R2 via the optibridge daemon",
	Long: `optibridge is a terminal client for the optibridge daemon.

The daemon does the heavy lifting (resizing, WebP conversion, provider
uploads, history storage); this client picks images, chooses a
destination, and manages the upload history.

Run 'optibridge' with no arguments to launch the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if util.IsTTY() && !flagNoInteractive {
			return runTUI()
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/optibridge/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		tuiMode := cmd.Name() == "optibridge" && util.IsTTY() && !flagNoInteractive
		initLogging(tuiMode)

		client = backend.New(cfg.Daemon.BaseURL, cfg.Daemon.Timeout())

		// Version and the client-side default live without the daemon.
		switch cmd.Name() {
		case "version", "default-provider":
			return nil
		}

		// One capability check at startup instead of probing before
		// every call.
		if err := client.Ping(); err != nil {
			return fmt.Errorf("optibridge daemon not reachable at %s — is it running? (%v)",
				cfg.Daemon.BaseURL, err)
		}
		slog.Debug("daemon reachable", "base_url", cfg.Daemon.BaseURL)
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newUploadCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

// initLogging wires slog through tint. In TUI mode stderr belongs to
// the interface, so debug output goes to the configured log file.
func initLogging(tuiMode bool) {
	level := slog.LevelWarn
	if flagDebug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if tuiMode {
		if !flagDebug {
			slog.SetDefault(slog.New(slog.DiscardHandler))
			return
		}
		path := cfg.Defaults.LogFile
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				w = f
			}
		}
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

// runTUI launches the interactive interface.
func runTUI() error {
	p := tea.NewProgram(unified.New(cfg, client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
