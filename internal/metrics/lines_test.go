package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dverbeek/keystone/internal/capsule"
)

func TestClassifyLinesWithSpans(t *testing.T) {
	t.Parallel()

	src := "// header\n\ncode := 1 // trailing\n/* block\n   still */\n"
	span := func(sub string) capsule.Span {
		start := strings.Index(src, sub)
		return capsule.Span{Start: start, End: start + len(sub)}
	}
	spans := []capsule.Span{
		span("// header"),
		span("// trailing"),
		span("/* block\n   still */"),
	}

	m := ClassifyLines([]byte(src), spans)
	assert.Equal(t, LineMetrics{Code: 1, Comment: 3, Blank: 1, Total: 5}, m)
	assert.Equal(t, m.Total, m.Code+m.Comment+m.Blank)
}

func TestClassifyLinesEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want LineMetrics
	}{
		{"empty", "", LineMetrics{}},
		{"single newline", "\n", LineMetrics{Blank: 1, Total: 1}},
		{"no trailing newline", "a", LineMetrics{Code: 1, Total: 1}},
		{"trailing newline", "a\n", LineMetrics{Code: 1, Total: 1}},
		{"whitespace only", "  \n\t\n", LineMetrics{Blank: 2, Total: 2}},
		{"crlf", "a\r\n\r\n", LineMetrics{Code: 1, Blank: 1, Total: 2}},
		{"two lines", "a\nb", LineMetrics{Code: 2, Total: 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyLines([]byte(tt.src), nil)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Total, got.Code+got.Comment+got.Blank)
		})
	}
}

func TestFallbackCyclomatic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want int
	}{
		{"empty", "", 1},
		{"no branches", "x = 1\ny = 2\n", 1},
		{"if and while", "if x && y:\n  pass\nwhile z:\n  pass\n", 4},
		{"keywords in identifiers ignored", "verified = modifier\n", 1},
		{"boolean operators", "a || b && c\n", 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FallbackCyclomatic([]byte(tt.src)))
		})
	}
}
