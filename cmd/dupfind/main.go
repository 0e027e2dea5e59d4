package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CharlieGordon/dupfind/internal/config"
	"github.com/CharlieGordon/dupfind/internal/logger"
	"github.com/CharlieGordon/dupfind/internal/output"
	"github.com/CharlieGordon/dupfind/internal/progress"
	"github.com/CharlieGordon/dupfind/internal/report"
	"github.com/CharlieGordon/dupfind/internal/scanner"
	"github.com/CharlieGordon/dupfind/internal/ui"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	extensions []string
	excludes   []string
	minSize    string
	outputFile string
	outputFmt  string
	quiet      bool
	logLevel   string
	noColor    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dupfind",
	Short: "Content-based duplicate file finder",
	Long: heredoc.Doc(`
		dupfind finds files with identical content under a directory tree.

		Files are grouped by size first, so only same-sized candidates get
		hashed (SHA-256). Matching digests form duplicate groups, reported
		as one block per group with every member path listed.
	`),
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Scan a directory tree for duplicate files",
	Long: heredoc.Doc(`
		Scans the given directory (default: the current directory) and
		prints a report of duplicate groups to stdout, or to a file with
		--output. A run summary always goes to stderr, so piping the
		report stays clean.

		Symbolic links are never followed. Unreadable files and
		directories are skipped with a warning and reported in the
		summary; they never abort the scan.
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger.Init(cfg.LogLevel, cfg.NoColor)

		root, err := resolveRoot(args)
		if err != nil {
			return err
		}

		// The report file must never count as a duplicate of itself
		// from an earlier run, so it is excluded from the scan.
		excludePath := ""
		if cfg.Output != "" {
			excludePath, err = filepath.Abs(cfg.Output)
			if err != nil {
				return fmt.Errorf("resolving output path %q: %w", cfg.Output, err)
			}
		}

		opts, err := buildOptions(cfg, root, excludePath)
		if err != nil {
			return err
		}
		if !cfg.Quiet && isatty.IsTerminal(os.Stderr.Fd()) {
			opts.Progress = progress.NewTerminal(os.Stderr)
		}

		res := report.Build(opts)

		format := output.Format(cfg.Format)
		if cfg.Output != "" {
			if err := output.SaveToFile(res, cfg.Output, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Report saved to: %s\n", cfg.Output)
		} else {
			if err := output.New(os.Stdout, format).Write(res); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}

		if !cfg.Quiet {
			output.WriteSummary(os.Stderr, res)
		}

		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [directory]",
	Short: "Scan and browse duplicate groups interactively",
	Long: heredoc.Doc(`
		Scans the given directory (default: the current directory) and
		opens an interactive browser over the duplicate groups found.
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("browse requires a terminal; use 'dupfind scan' for piped output")
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Log lines would tear the alternate screen, so only real
		// errors get through in interactive mode.
		logger.Init("error", true)

		root, err := resolveRoot(args)
		if err != nil {
			return err
		}

		opts, err := buildOptions(cfg, root, "")
		if err != nil {
			return err
		}

		return ui.RunInteractive(opts)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("Run 'dupfind config init' to create it.")
		}
		fmt.Println()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Printf("Config file already exists: %s\n", cfgPath)
			return nil
		}

		if _, err := config.EnsureConfigExists(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("Created config file: %s\n", cfgPath)

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(cfgPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dupfind %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")

	// Scan command flags
	scanCmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "only scan these file extensions (repeatable)")
	scanCmd.Flags().StringSliceVarP(&excludes, "exclude", "x", nil, "skip names matching this glob, e.g. .git or *.tmp (repeatable)")
	scanCmd.Flags().StringVar(&minSize, "min-size", "", "skip candidates smaller than this (e.g. 1KB, 10MiB)")
	scanCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file instead of stdout")
	scanCmd.Flags().StringVarP(&outputFmt, "format", "f", "", "report format (text, json)")
	scanCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and summary output")

	// Browse command flags
	browseCmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "only scan these file extensions (repeatable)")
	browseCmd.Flags().StringSliceVarP(&excludes, "exclude", "x", nil, "skip names matching this glob, e.g. .git or *.tmp (repeatable)")
	browseCmd.Flags().StringVar(&minSize, "min-size", "", "skip candidates smaller than this (e.g. 1KB, 10MiB)")

	// Add commands
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = extensions
	}
	if cmd.Flags().Changed("exclude") {
		cfg.ExcludePatterns = excludes
	}
	if cmd.Flags().Changed("min-size") {
		cfg.MinSize = minSize
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFile
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = outputFmt
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = quiet
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = noColor
	}
}

// resolveRoot turns the optional positional argument into a validated
// absolute scan root.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", root, err)
	}
	if err := scanner.ValidateRoot(absRoot); err != nil {
		return "", err
	}

	return absRoot, nil
}

func buildOptions(cfg *config.Config, root, excludePath string) (report.Options, error) {
	minBytes, err := cfg.MinSizeBytes()
	if err != nil {
		return report.Options{}, fmt.Errorf("invalid minimum size: %w", err)
	}

	return report.Options{
		Root:         root,
		ExcludePath:  excludePath,
		ExcludeGlobs: cfg.ExcludePatterns,
		Extensions:   scanner.NormalizeExtensions(cfg.Extensions),
		MinSize:      minBytes,
	}, nil
}
