// Package patterns matches source content against named signature sets
// to infer frameworks, technologies and infrastructure, scoring each
// match by the fraction of sub-patterns that hit.
package patterns

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultMinConfidence is the threshold under which detections are
// discarded.
const DefaultMinConfidence = 0.3

// Category classifies what a pattern identifies.
type Category string

const (
	CategoryFramework      Category = "framework"
	CategoryTechnology     Category = "technology"
	CategoryArchitecture   Category = "architecture"
	CategoryInfrastructure Category = "infrastructure"
)

// Definition declares one detectable signature. Every sub-pattern in
// Patterns carries equal weight: a match's confidence is the fraction
// of sub-patterns that hit. VersionPatterns are optional regexes whose
// first capture group is collected as a version hint.
type Definition struct {
	Name            string            `yaml:"name" json:"name"`
	Category        Category          `yaml:"category" json:"category"`
	Description     string            `yaml:"description,omitempty" json:"description,omitempty"`
	Patterns        []string          `yaml:"patterns" json:"patterns"`
	VersionPatterns []string          `yaml:"version_patterns,omitempty" json:"version_patterns,omitempty"`
	Metadata        map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Detection is one scored match of a definition against content.
type Detection struct {
	Name         string            `json:"name"`
	Category     Category          `json:"category"`
	Confidence   float64           `json:"confidence"`
	Description  string            `json:"description,omitempty"`
	Matched      []string          `json:"matched,omitempty"`
	VersionHints []string          `json:"version_hints,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type compiled struct {
	def      Definition
	subs     []*regexp.Regexp
	versions []*regexp.Regexp
}

// Registry holds compiled definitions in registration order, and
// detection results preserve that order.
type Registry struct {
	patterns    []compiled
	diagnostics []string
}

func NewRegistry() *Registry { return &Registry{} }

// Register compiles and stores def. A definition with no sub-patterns
// or with an invalid sub-pattern regex is skipped with a diagnostic;
// an invalid version pattern only drops that hint.
func (r *Registry) Register(def Definition) {
	if len(def.Patterns) == 0 {
		r.diagnostics = append(r.diagnostics,
			fmt.Sprintf("pattern %q has no sub-patterns, skipped", def.Name))
		return
	}
	c := compiled{def: def}
	for _, p := range def.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			r.diagnostics = append(r.diagnostics,
				fmt.Sprintf("pattern %q: invalid regex %q, skipped: %v", def.Name, p, err))
			return
		}
		c.subs = append(c.subs, re)
	}
	for _, p := range def.VersionPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			r.diagnostics = append(r.diagnostics,
				fmt.Sprintf("pattern %q: invalid version regex %q dropped: %v", def.Name, p, err))
			continue
		}
		c.versions = append(c.versions, re)
	}
	r.patterns = append(r.patterns, c)
}

func (r *Registry) Len() int { return len(r.patterns) }

// Diagnostics reports definitions or version hints dropped during
// registration.
func (r *Registry) Diagnostics() []string {
	out := make([]string, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Definitions returns the registered definitions in order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.patterns))
	for i, c := range r.patterns {
		out[i] = c.def
	}
	return out
}

// Detect scores content against every registered definition and keeps
// matches whose confidence reaches min. min <= 0 selects
// DefaultMinConfidence. Zero detections is an empty result, not an
// error.
func (r *Registry) Detect(content string, min float64) []Detection {
	if min <= 0 {
		min = DefaultMinConfidence
	}
	var out []Detection
	for _, c := range r.patterns {
		var matched []string
		for _, re := range c.subs {
			if re.MatchString(content) {
				matched = append(matched, re.String())
			}
		}
		if len(matched) == 0 {
			continue
		}
		confidence := float64(len(matched)) / float64(len(c.subs))
		if confidence < min {
			continue
		}
		out = append(out, Detection{
			Name:         c.def.Name,
			Category:     c.def.Category,
			Confidence:   confidence,
			Description:  c.def.Description,
			Matched:      matched,
			VersionHints: versionHints(content, c.versions),
			Metadata:     c.def.Metadata,
		})
	}
	return out
}

// versionHints collects the first capture group of every version
// pattern occurrence.
func versionHints(content string, res []*regexp.Regexp) []string {
	var hints []string
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if len(m) > 1 && m[1] != "" {
				hints = append(hints, m[1])
			}
		}
	}
	return hints
}

// patternFile is the on-disk shape of a custom pattern file.
type patternFile struct {
	Patterns []Definition `yaml:"patterns"`
}

// LoadFile registers custom definitions from a YAML file on top of
// whatever the registry already holds. Malformed definitions inside
// the file surface as diagnostics, not errors.
func (r *Registry) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pattern file: %w", err)
	}
	var f patternFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse pattern file %s: %w", path, err)
	}
	for _, def := range f.Patterns {
		r.Register(def)
	}
	return nil
}
