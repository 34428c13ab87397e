package metrics

import (
	"bytes"
	"regexp"

	"github.com/dverbeek/keystone/internal/capsule"
)

// ClassifyLines splits source into code, comment and blank lines using
// the comment byte spans a capsule collected. The rules are uniform
// across languages: a line whose only non-whitespace bytes fall inside
// comment spans is a comment line, a line with no non-whitespace bytes
// is blank, everything else (including code with a trailing comment)
// is code. The three figures always sum to Total.
func ClassifyLines(source []byte, spans []capsule.Span) LineMetrics {
	var m LineMetrics
	spanIdx := 0
	lineStart := 0
	for lineStart <= len(source) {
		nl := bytes.IndexByte(source[lineStart:], '\n')
		lineEnd := len(source)
		if nl >= 0 {
			lineEnd = lineStart + nl
		}
		if nl < 0 && lineStart == lineEnd {
			// Content ended on a newline; no trailing line remains.
			break
		}

		m.Total++
		hasCode, hasComment := false, false
		for i := lineStart; i < lineEnd; i++ {
			c := source[i]
			if c == ' ' || c == '\t' || c == '\r' {
				continue
			}
			for spanIdx < len(spans) && spans[spanIdx].End <= i {
				spanIdx++
			}
			if spanIdx < len(spans) && spans[spanIdx].Start <= i {
				hasComment = true
				continue
			}
			hasCode = true
		}
		switch {
		case hasCode:
			m.Code++
		case hasComment:
			m.Comment++
		default:
			m.Blank++
		}

		if nl < 0 {
			break
		}
		lineStart = lineEnd + 1
	}
	return m
}

// branchTokenRe matches branching keywords across the supported
// languages. The scan is textual, so tokens inside strings and
// comments are counted too; that is acceptable for an estimate used
// only when no syntax tree exists.
var branchTokenRe = regexp.MustCompile(`\b(if|elif|elsif|for|foreach|while|until|when|case|match|catch|except|rescue)\b`)

// FallbackCyclomatic estimates cyclomatic complexity from raw text:
// baseline 1 plus one per branching keyword or boolean short-circuit
// operator.
func FallbackCyclomatic(source []byte) int {
	n := 1
	n += len(branchTokenRe.FindAll(source, -1))
	n += bytes.Count(source, []byte("&&"))
	n += bytes.Count(source, []byte("||"))
	return n
}
