package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dverbeek/keystone"
	"github.com/spf13/cobra"
)

// --- detect ---

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect framework and technology patterns in a file",
	Long:  "Runs the weighted pattern registry against one file's content and prints the detections that clear the confidence floor.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().Float64Var(&flagMinConfidence, "min-confidence", 0, "minimum pattern detection confidence")
	detectCmd.Flags().StringVar(&flagPatterns, "patterns", "", "extra YAML pattern definition file")
}

func runDetect(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return outputError("detect", fmt.Errorf("reading %s: %w", args[0], err))
	}

	engine, err := newInspectEngine()
	if err != nil {
		return outputError("detect", err)
	}
	defer engine.Close()

	report := CLIDetectReport{
		File:        args[0],
		Detections:  []CLIDetection{},
		Diagnostics: engine.PatternDiagnostics(),
	}
	for _, det := range engine.DetectPatterns(content, args[0]) {
		report.Detections = append(report.Detections, CLIDetection{
			Name:         det.Name,
			Category:     string(det.Category),
			Confidence:   det.Confidence,
			Description:  det.Description,
			VersionHints: det.VersionHints,
		})
	}

	return outputResult(CLIResult{Command: "detect", Results: report})
}

// --- graph ---

var flagDOT bool

var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Build and print the file dependency graph",
	Long:  "Analyzes a source tree without touching the catalog and prints its dependency graph with PageRank centrality scores.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&flagDOT, "dot", false, "print Graphviz DOT instead of the standard output format")
	graphCmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. go,python)")
	graphCmd.Flags().StringVar(&flagIgnore, "ignore", "", "comma-separated ignore globs added to the config")
	graphCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel analysis workers (default: one per CPU)")
}

func runGraph(cmd *cobra.Command, args []string) error {
	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return outputError("graph", err)
	}

	opts, err := engineOptions(findRepoRoot(targetDir))
	if err != nil {
		return outputError("graph", err)
	}
	engine, err := keystone.New(opts...)
	if err != nil {
		return outputError("graph", fmt.Errorf("creating engine: %w", err))
	}
	defer engine.Close()

	pa, err := engine.AnalyzeDirectory(context.Background(), targetDir)
	if err != nil {
		return outputError("graph", err)
	}

	if flagDOT {
		fmt.Print(pa.DOT())
		return nil
	}

	result := CLIGraph{
		Nodes:      pa.Graph().Nodes(),
		Centrality: pa.Centrality,
		Stats:      pa.GraphStats,
	}
	for _, e := range pa.Graph().Edges() {
		result.Edges = append(result.Edges, CLIGraphEdge{
			From:   e.From,
			To:     e.To,
			Weight: e.Weight,
			Kind:   string(e.Kind),
		})
	}

	return outputResult(CLIResult{Command: "graph", Results: result})
}

// --- languages ---

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long:  "Lists every registered language capsule with its extensions and accepted aliases.",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, args []string) error {
	engine, err := keystone.New()
	if err != nil {
		return outputError("languages", fmt.Errorf("creating engine: %w", err))
	}
	defer engine.Close()

	langs := engine.Languages()
	results := make([]CLILanguage, 0, len(langs))
	for _, l := range langs {
		results = append(results, CLILanguage{
			ID:         l.ID,
			Name:       l.DisplayName,
			Extensions: l.Extensions,
			Aliases:    l.Aliases,
		})
	}

	total := len(results)
	return outputResult(CLIResult{Command: "languages", Results: results, TotalCount: &total})
}

// newInspectEngine builds an engine from flags and config without a
// catalog attached.
func newInspectEngine() (*keystone.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	opts, err := engineOptions(findRepoRoot(cwd))
	if err != nil {
		return nil, err
	}
	engine, err := keystone.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return engine, nil
}
