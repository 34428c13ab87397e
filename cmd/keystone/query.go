package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dverbeek/keystone/internal/scoring"
	"github.com/dverbeek/keystone/internal/store"
	"github.com/spf13/cobra"
)

// openStore opens the catalog from the --catalog flag path (or default).
func openStore() (*store.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	repoRoot := findRepoRoot(cwd)
	catalogPath := resolveCatalogPath(repoRoot)

	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog not found: %s (run 'keystone analyze' first)", catalogPath)
	}

	return store.NewStore(catalogPath)
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so
// RunE can propagate it to Cobra. In JSON mode the error is written to
// stdout as a CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// --- rank ---

var flagTop int

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank cataloged files by importance",
	Long:  "Reads importance scores from the catalog and lists the top files, highest overall score first.",
	Args:  cobra.NoArgs,
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().IntVar(&flagTop, "top", 10, "number of files to list (0 for all)")
}

func runRank(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return outputError("rank", err)
	}
	defer s.Close()

	files, err := s.Files()
	if err != nil {
		return outputError("rank", err)
	}
	paths := make(map[int64]string, len(files))
	for _, f := range files {
		paths[f.ID] = f.Path
	}

	scores, err := s.Scores()
	if err != nil {
		return outputError("rank", err)
	}
	overall := make(map[string]float64, len(scores))
	for _, sc := range scores {
		if p, ok := paths[sc.FileID]; ok {
			overall[p] = sc.Overall
		}
	}

	ranked := scoring.RankFiles(overall, flagTop)
	results := make([]CLIRankedFile, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, CLIRankedFile{
			Rank:       r.Rank,
			Path:       r.Path,
			Score:      r.Score,
			Normalized: r.Normalized,
		})
	}

	total := len(overall)
	return outputResult(CLIResult{Command: "rank", Results: results, TotalCount: &total})
}

// --- show ---

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Show the full catalog entry for one file",
	Long:  "Prints metrics, symbols, imports, detections, diagnostics, and the importance score for a file. Paths match the catalog, relative to the analyzed root.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return outputError("show", err)
	}
	defer s.Close()

	path := filepath.ToSlash(args[0])
	file, err := s.FileByPath(path)
	if err != nil {
		return outputError("show", err)
	}
	if file == nil {
		return outputError("show", fmt.Errorf("file not in catalog: %s (paths are relative to the analyzed root)", path))
	}

	data, err := s.LoadFileData(file.ID)
	if err != nil {
		return outputError("show", err)
	}

	report := fileReport(data)

	scores, err := s.Scores()
	if err != nil {
		return outputError("show", err)
	}
	for _, sc := range scores {
		if sc.FileID == file.ID {
			report.Score = &CLIScore{
				Overall:    sc.Overall,
				Size:       sc.Size,
				Centrality: sc.Centrality,
				Complexity: sc.Complexity,
				Dependency: sc.Dependency,
			}
			break
		}
	}

	return outputResult(CLIResult{Command: "show", Results: report})
}

// fileReport converts one file's catalog rows to the CLI representation.
func fileReport(data *store.FileData) CLIFileReport {
	report := CLIFileReport{
		Path:         data.File.Path,
		Language:     data.File.Language,
		SizeBytes:    data.File.SizeBytes,
		LineCount:    data.File.LineCount,
		LastAnalyzed: data.File.LastAnalyzed.UTC().Format(time.RFC3339),
	}
	if m := data.Metrics; m != nil {
		report.Metrics = &CLIMetrics{
			CodeLines:          m.CodeLines,
			CommentLines:       m.CommentLines,
			BlankLines:         m.BlankLines,
			TotalLines:         m.TotalLines,
			Cyclomatic:         m.Cyclomatic,
			Cognitive:          m.Cognitive,
			HalsteadVolume:     m.HalsteadVolume,
			HalsteadDifficulty: m.HalsteadDifficulty,
			HalsteadEffort:     m.HalsteadEffort,
			Maintainability:    m.Maintainability,
			Functions:          m.Functions,
			Types:              m.Types,
			Imports:            m.Imports,
		}
	}
	for _, sym := range data.Symbols {
		report.Symbols = append(report.Symbols, CLISymbol{
			Name:       sym.Name,
			Kind:       sym.Kind,
			StartLine:  sym.StartLine,
			EndLine:    sym.EndLine,
			Signature:  sym.Signature,
			Complexity: sym.Complexity,
		})
	}
	for _, imp := range data.Imports {
		report.Imports = append(report.Imports, imp.Path)
	}
	for _, det := range data.Detections {
		report.Detections = append(report.Detections, CLIDetection{
			Name:         det.Name,
			Category:     det.Category,
			Confidence:   det.Confidence,
			VersionHints: det.VersionHints,
		})
	}
	for _, diag := range data.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, diag.Message)
	}
	return report
}

// --- summary ---

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the analyzed catalog",
	Long:  "Prints per-language file counts, line totals, and the last analysis run recorded in the catalog.",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return outputError("summary", err)
	}
	defer s.Close()

	files, err := s.Files()
	if err != nil {
		return outputError("summary", err)
	}

	summary := CLISummary{TotalFiles: len(files)}
	byLanguage := make(map[string]*CLILanguageCount)
	for _, f := range files {
		summary.TotalLines += f.LineCount
		lc, ok := byLanguage[f.Language]
		if !ok {
			lc = &CLILanguageCount{Language: f.Language}
			byLanguage[f.Language] = lc
		}
		lc.FileCount++
		lc.LineCount += f.LineCount
	}
	for _, lc := range byLanguage {
		summary.Languages = append(summary.Languages, *lc)
	}
	sort.Slice(summary.Languages, func(i, j int) bool {
		return summary.Languages[i].Language < summary.Languages[j].Language
	})

	if root, err := s.Meta("root"); err == nil {
		summary.Root = root
	}
	if last, err := s.Meta("last_analyzed"); err == nil {
		summary.LastAnalyzed = last
	}

	return outputResult(CLIResult{Command: "summary", Results: summary})
}
