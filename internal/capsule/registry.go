package capsule

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dverbeek/keystone/internal/lang"
)

// Registry routes source descriptors to language capsules. Build it once
// at startup; the mapping tables are not guarded for concurrent
// registration, but a fully built registry is safe for concurrent use.
type Registry struct {
	capsules []Capsule
	byID     map[string]int
	byAlias  map[string]int
	byExt    map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]int),
		byAlias: make(map[string]int),
		byExt:   make(map[string]int),
	}
}

// Register adds a capsule keyed by its language identity. Registering a
// capsule for an already registered language id replaces the previous
// one; on alias or extension collisions between different languages the
// last registration wins.
func (r *Registry) Register(c Capsule) {
	info := c.Language()
	idx, ok := r.byID[info.ID]
	if ok {
		r.capsules[idx] = c
	} else {
		r.capsules = append(r.capsules, c)
		idx = len(r.capsules) - 1
		r.byID[info.ID] = idx
	}
	for _, alias := range info.Aliases {
		r.byAlias[strings.ToLower(alias)] = idx
	}
	for _, ext := range info.Extensions {
		r.byExt[strings.ToLower(ext)] = idx
	}
}

// Resolve returns the capsule for a descriptor, or nil when none matches.
// An explicit language hint is matched case-insensitively against
// aliases and always beats extension-based matching; callers supplying a
// hint have better information than the filename.
func (r *Registry) Resolve(src Source) Capsule {
	if hint := strings.ToLower(strings.TrimSpace(src.LanguageHint)); hint != "" {
		if idx, ok := r.byAlias[hint]; ok {
			return r.capsules[idx]
		}
		return nil
	}
	ext := strings.ToLower(filepath.Ext(src.Path))
	if idx, ok := r.byExt[ext]; ok {
		return r.capsules[idx]
	}
	return nil
}

// Parse resolves the descriptor and delegates to the capsule. A
// descriptor no capsule handles fails with ErrUnsupportedLanguage.
func (r *Registry) Parse(ctx context.Context, src Source, content []byte, opts Options) (*Document, error) {
	c := r.Resolve(src)
	if c == nil {
		return nil, fmt.Errorf("%s: %w", describe(src), ErrUnsupportedLanguage)
	}
	return c.Parse(ctx, src, content, opts)
}

// Languages lists the registered language identities in registration
// order.
func (r *Registry) Languages() []lang.Info {
	out := make([]lang.Info, 0, len(r.capsules))
	for _, c := range r.capsules {
		out = append(out, c.Language())
	}
	return out
}

func describe(src Source) string {
	if src.LanguageHint != "" {
		return fmt.Sprintf("%s (hint %q)", src.Path, src.LanguageHint)
	}
	return src.Path
}

// Builtin returns a registry with every supported language capsule
// registered.
func Builtin() *Registry {
	r := NewRegistry()
	for _, c := range []Capsule{
		newGoCapsule(),
		newJavaScriptCapsule(),
		newTypeScriptCapsule(),
		newPythonCapsule(),
		newRubyCapsule(),
		newRustCapsule(),
		newJavaCapsule(),
		newCCapsule(),
		newCppCapsule(),
		newCSharpCapsule(),
		newPHPCapsule(),
		newKotlinCapsule(),
		newSwiftCapsule(),
		newScalaCapsule(),
		newBashCapsule(),
		newElixirCapsule(),
		newLuaCapsule(),
		newHCLCapsule(),
		newYAMLCapsule(),
		newTOMLCapsule(),
	} {
		r.Register(c)
	}
	return r
}
