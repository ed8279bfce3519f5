// Package main implements the uvcat command line interface.
package main

import (
	"fmt"
	"os"

	"uvcat/cmd/uvcat/explore"
	"uvcat/internal/config"
	"uvcat/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "uvcat",
	Short: "uvcat - the ultraviolet catastrophe in your terminal",
	Long: `uvcat renders blackbody radiation spectra in the terminal and shows
how classical physics predicted infinite energy at short wavelengths,
and how Planck's quantum hypothesis fixed it.

It compares three spectral radiance laws:
  - Planck's law (the real spectrum)
  - Rayleigh-Jeans law (the classical prediction that blows up)
  - Wien's approximation (good at short wavelengths only)

Run without arguments to start the interactive explorer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive explorer has its own UI; keep zap quiet there.
		if cmd.Use == "uvcat" && cmd.CalledAs() == "uvcat" {
			return logging.Initialize(resolveWorkspace())
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return logging.Initialize(resolveWorkspace())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplorer()
	},
}

// runExplorer launches the interactive TUI.
func runExplorer() error {
	ws := resolveWorkspace()

	cfg, err := config.Load(ws)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model, err := explore.New(ws, cfg)
	if err != nil {
		return fmt.Errorf("failed to start explorer: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explorer exited with error: %w", err)
	}
	return nil
}

// resolveWorkspace falls back to the current directory.
func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	ws, err := os.Getwd()
	if err != nil {
		return "."
	}
	return ws
}

// loadConfig loads the workspace config for non-interactive commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolveWorkspace())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// versionCmd prints the release version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the uvcat version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("uvcat %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")

	rootCmd.Version = version
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
