package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// formatRankedText formats CLIRankedFile results as aligned columns.
func formatRankedText(w io.Writer, files []CLIRankedFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPATH\tSCORE\tNORMALIZED")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\n", f.Rank, f.Path, f.Score, f.Normalized)
	}
	tw.Flush()
}

// formatDetectReportText formats a CLIDetectReport as a table with any
// registry diagnostics below it.
func formatDetectReportText(w io.Writer, report CLIDetectReport) {
	fmt.Fprintf(w, "File: %s\n", report.File)
	if len(report.Detections) == 0 {
		fmt.Fprintln(w, "No patterns detected")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PATTERN\tCATEGORY\tCONFIDENCE\tVERSIONS")
		for _, d := range report.Detections {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n",
				d.Name, d.Category, d.Confidence, strings.Join(d.VersionHints, ", "))
		}
		tw.Flush()
	}
	for _, diag := range report.Diagnostics {
		fmt.Fprintf(w, "Warning: %s\n", diag)
	}
}

// formatLanguagesText formats CLILanguage results as aligned columns.
func formatLanguagesText(w io.Writer, langs []CLILanguage) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEXTENSIONS\tALIASES")
	for _, l := range langs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			l.ID, l.Name, strings.Join(l.Extensions, " "), strings.Join(l.Aliases, " "))
	}
	tw.Flush()
}

// formatFileReportText formats a CLIFileReport as readable text.
func formatFileReportText(w io.Writer, report CLIFileReport) {
	fmt.Fprintf(w, "File: %s\n", report.Path)
	fmt.Fprintf(w, "Language: %s\n", report.Language)
	fmt.Fprintf(w, "Size: %d bytes, %d lines\n", report.SizeBytes, report.LineCount)
	fmt.Fprintf(w, "Analyzed: %s\n", report.LastAnalyzed)
	fmt.Fprintln(w)

	if m := report.Metrics; m != nil {
		fmt.Fprintln(w, "Metrics:")
		fmt.Fprintf(w, "  Lines: %d code, %d comment, %d blank\n", m.CodeLines, m.CommentLines, m.BlankLines)
		fmt.Fprintf(w, "  Cyclomatic: %d  Cognitive: %d\n", m.Cyclomatic, m.Cognitive)
		fmt.Fprintf(w, "  Halstead volume: %.1f  Maintainability: %.1f\n", m.HalsteadVolume, m.Maintainability)
		fmt.Fprintf(w, "  Functions: %d  Types: %d  Imports: %d\n", m.Functions, m.Types, m.Imports)
		fmt.Fprintln(w)
	}

	if s := report.Score; s != nil {
		fmt.Fprintln(w, "Importance:")
		fmt.Fprintf(w, "  Overall: %.4f\n", s.Overall)
		fmt.Fprintf(w, "  Size: %.4f  Centrality: %.4f  Complexity: %.4f  Dependency: %.4f\n",
			s.Size, s.Centrality, s.Complexity, s.Dependency)
		fmt.Fprintln(w)
	}

	if len(report.Symbols) > 0 {
		fmt.Fprintln(w, "Symbols:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tKIND\tLINES\tCOMPLEXITY")
		for _, s := range report.Symbols {
			fmt.Fprintf(tw, "  %s\t%s\t%d-%d\t%d\n", s.Name, s.Kind, s.StartLine, s.EndLine, s.Complexity)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(report.Imports) > 0 {
		fmt.Fprintln(w, "Imports:")
		for _, imp := range report.Imports {
			fmt.Fprintf(w, "  %s\n", imp)
		}
		fmt.Fprintln(w)
	}

	if len(report.Detections) > 0 {
		fmt.Fprintln(w, "Detections:")
		for _, d := range report.Detections {
			fmt.Fprintf(w, "  %s (%s) %.2f\n", d.Name, d.Category, d.Confidence)
		}
		fmt.Fprintln(w)
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintln(w, "Diagnostics:")
		for _, diag := range report.Diagnostics {
			fmt.Fprintf(w, "  %s\n", diag)
		}
	}
}

// formatSummaryText formats a CLISummary as readable text.
func formatSummaryText(w io.Writer, summary CLISummary) {
	fmt.Fprintln(w, "Catalog Summary")
	fmt.Fprintln(w, "===============")
	if summary.Root != "" {
		fmt.Fprintf(w, "Root: %s\n", summary.Root)
	}
	if summary.LastAnalyzed != "" {
		fmt.Fprintf(w, "Analyzed: %s\n", summary.LastAnalyzed)
	}
	fmt.Fprintf(w, "Files: %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "Lines: %d\n", summary.TotalLines)

	if len(summary.Languages) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Languages:")
		for _, lang := range summary.Languages {
			fmt.Fprintf(w, "  %s: %d files, %d lines\n",
				lang.Language, lang.FileCount, lang.LineCount)
		}
	}
}

// formatGraphText formats a CLIGraph as an edge table with a stats
// footer.
func formatGraphText(w io.Writer, g CLIGraph) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tWEIGHT\tKIND\tCENTRALITY")
	for _, e := range g.Edges {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%.4f\n",
			e.From, e.To, e.Weight, e.Kind, g.Centrality[e.To])
	}
	tw.Flush()
	fmt.Fprintf(w, "\nNodes: %d  Edges: %d  Converged: %v (%d iterations)\n",
		g.Stats.Nodes, g.Stats.Edges, g.Stats.Converged, g.Stats.Iterations)
}

// outputResultText dispatches to the appropriate text formatter based
// on the result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	w := io.Writer(os.Stdout)

	switch v := result.Results.(type) {
	case []CLIRankedFile:
		formatRankedText(w, v)
	case CLIDetectReport:
		formatDetectReportText(w, v)
	case []CLILanguage:
		formatLanguagesText(w, v)
	case CLIFileReport:
		formatFileReportText(w, v)
	case CLISummary:
		formatSummaryText(w, v)
	case CLIGraph:
		formatGraphText(w, v)
	case nil:
		// No output for nil results.
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}

	// Pagination footer.
	if result.TotalCount != nil {
		count := *result.TotalCount
		shown := resultLen(result.Results)
		if shown < count {
			fmt.Fprintf(w, "\nShowing %d of %d results\n", shown, count)
		}
	}

	return nil
}

// resultLen returns the length of a result slice, or 1 for a single value.
func resultLen(v any) int {
	switch r := v.(type) {
	case []CLIRankedFile:
		return len(r)
	case []CLILanguage:
		return len(r)
	case nil:
		return 0
	default:
		return 1
	}
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
