package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dverbeek/keystone"
	"github.com/spf13/cobra"
)

var (
	flagCatalog string
	flagConfig  string
	flagFormat  string
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "keystone",
	Short:         "Polyglot static analysis and file importance ranking",
	Long:          "Keystone parses source code with tree-sitter, computes complexity metrics, builds the file dependency graph, detects framework patterns, and ranks files by importance into a SQLite catalog.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run; the bare command prints help.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog path (default: .keystone/catalog.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: keystone.yaml relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(languagesCmd)
}

var (
	flagForce         bool
	flagLanguages     string
	flagWorkers       int
	flagMinConfidence float64
	flagPatterns      string
	flagIgnore        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a source tree and persist the catalog",
	Long:  "Discovers source files, parses them with tree-sitter, computes metrics, pattern detections, dependency centrality, and importance scores, and writes everything to the SQLite catalog.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagForce, "force", false, "delete the catalog and analyze from scratch")
	analyzeCmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. go,python)")
	analyzeCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel analysis workers (default: one per CPU)")
	analyzeCmd.Flags().Float64Var(&flagMinConfidence, "min-confidence", 0, "minimum pattern detection confidence")
	analyzeCmd.Flags().StringVar(&flagPatterns, "patterns", "", "extra YAML pattern definition file")
	analyzeCmd.Flags().StringVar(&flagIgnore, "ignore", "", "comma-separated ignore globs added to the config")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	repoRoot := findRepoRoot(targetDir)
	catalogPath := resolveCatalogPath(repoRoot)

	// Ensure the catalog directory exists.
	catalogDir := filepath.Dir(catalogPath)
	if err := os.MkdirAll(catalogDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", catalogDir, err)
	}

	// Handle --force: delete the catalog file entirely.
	if flagForce {
		if err := os.Remove(catalogPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing catalog for --force: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Cleared catalog: %s\n", catalogPath)
	}

	opts, err := engineOptions(repoRoot)
	if err != nil {
		return err
	}
	opts = append(opts, keystone.WithStore(catalogPath))

	engine, err := keystone.New(opts...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	for _, diag := range engine.PatternDiagnostics() {
		fmt.Fprintf(os.Stderr, "Pattern warning: %s\n", diag)
	}

	pa, err := engine.AnalyzeDirectory(context.Background(), targetDir)
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	// Print timing summary to stderr.
	fmt.Fprintf(os.Stderr, "Analyzed %s in %s (%d files, %d reused, %d test files)\n",
		targetDir,
		time.Since(start).Round(time.Millisecond),
		pa.Summary.TotalFiles,
		pa.Summary.Reused,
		pa.Summary.TestFiles,
	)
	fmt.Fprintf(os.Stderr, "Catalog: %s\n", catalogPath)

	return nil
}

// engineOptions assembles engine options from the config file and
// command-line overrides. Flags win over file values.
func engineOptions(repoRoot string) ([]keystone.Option, error) {
	cfg, err := keystone.LoadConfig(resolveConfigPath(repoRoot))
	if err != nil {
		return nil, err
	}

	opts := []keystone.Option{keystone.WithConfig(cfg)}
	if flagLanguages != "" {
		opts = append(opts, keystone.WithLanguages(splitList(flagLanguages)...))
	}
	if flagWorkers > 0 {
		opts = append(opts, keystone.WithWorkers(flagWorkers))
	}
	if flagMinConfidence > 0 {
		opts = append(opts, keystone.WithMinConfidence(flagMinConfidence))
	}
	if flagPatterns != "" {
		opts = append(opts, keystone.WithPatternFile(flagPatterns))
	}
	if flagIgnore != "" {
		opts = append(opts, keystone.WithIgnore(splitList(flagIgnore)...))
	}
	return opts, nil
}

// splitList splits a comma-separated flag value into trimmed entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// resolveTargetDir returns the absolute path of the directory to analyze.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding .git.
			return startDir
		}
		dir = parent
	}
}

// resolveCatalogPath returns the catalog path from the --catalog flag
// or the default.
func resolveCatalogPath(repoRoot string) string {
	if flagCatalog != "" {
		if filepath.IsAbs(flagCatalog) {
			return flagCatalog
		}
		return filepath.Join(repoRoot, flagCatalog)
	}
	return filepath.Join(repoRoot, ".keystone", "catalog.db")
}

// resolveConfigPath returns the config path from the --config flag or
// the default. A missing file at either location falls back to the
// built-in defaults.
func resolveConfigPath(repoRoot string) string {
	if flagConfig != "" {
		if filepath.IsAbs(flagConfig) {
			return flagConfig
		}
		return filepath.Join(repoRoot, flagConfig)
	}
	return filepath.Join(repoRoot, "keystone.yaml")
}
