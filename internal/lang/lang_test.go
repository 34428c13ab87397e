package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 20)

	// Registration order is stable.
	assert.Equal(t, "go", all[0].ID)
	assert.Equal(t, "toml", all[len(all)-1].ID)

	// Returned slice is a copy.
	all[0].ID = "mutated"
	assert.Equal(t, "go", All()[0].ID)
}

func TestRegistryInvariants(t *testing.T) {
	seenIDs := map[string]bool{}
	seenExts := map[string]string{}
	for _, info := range All() {
		assert.False(t, seenIDs[info.ID], "duplicate id %q", info.ID)
		seenIDs[info.ID] = true

		assert.NotEmpty(t, info.DisplayName, "display name for %q", info.ID)
		assert.NotEmpty(t, info.Extensions, "extensions for %q", info.ID)
		assert.Contains(t, info.Aliases, info.ID, "aliases for %q must include the id", info.ID)

		for _, ext := range info.Extensions {
			assert.True(t, ext[0] == '.', "extension %q for %q must start with a dot", ext, info.ID)
			if prev, ok := seenExts[ext]; ok {
				t.Errorf("extension %q claimed by both %q and %q", ext, prev, info.ID)
			}
			seenExts[ext] = info.ID
		}
	}
}

func TestByID(t *testing.T) {
	info, ok := ByID("typescript")
	require.True(t, ok)
	assert.Equal(t, "TypeScript", info.DisplayName)

	_, ok = ByID("cobol")
	assert.False(t, ok)
}

func TestByAlias(t *testing.T) {
	tests := []struct {
		alias  string
		wantID string
	}{
		{"go", "go"},
		{"golang", "go"},
		{"GOLANG", "go"},
		{"  ts  ", "typescript"},
		{"c++", "cpp"},
		{"shell", "bash"},
		{"terraform", "hcl"},
	}
	for _, tt := range tests {
		info, ok := ByAlias(tt.alias)
		require.True(t, ok, "alias %q", tt.alias)
		assert.Equal(t, tt.wantID, info.ID, "alias %q", tt.alias)
	}

	_, ok := ByAlias("brainfuck")
	assert.False(t, ok)
}

func TestByExtension(t *testing.T) {
	info, ok := ByExtension(".go")
	require.True(t, ok)
	assert.Equal(t, "go", info.ID)

	// Leading dot is optional, case is ignored.
	info, ok = ByExtension("RS")
	require.True(t, ok)
	assert.Equal(t, "rust", info.ID)

	_, ok = ByExtension(".bin")
	assert.False(t, ok)
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"main.go", "go", true},
		{"src/app.tsx", "typescript", true},
		{"lib/util.MJS", "javascript", true},
		{"deploy/main.tf", "hcl", true},
		{"config.yml", "yaml", true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		info, ok := ForFile(tt.path)
		assert.Equal(t, tt.wantOK, ok, "path %q", tt.path)
		if tt.wantOK {
			assert.Equal(t, tt.wantID, info.ID, "path %q", tt.path)
		}
	}
}

func TestMatchesExtension(t *testing.T) {
	info, ok := ByID("cpp")
	require.True(t, ok)
	assert.True(t, info.MatchesExtension(".hpp"))
	assert.True(t, info.MatchesExtension("cc"))
	assert.False(t, info.MatchesExtension(".c"))
}

func TestMatchesAlias(t *testing.T) {
	info, ok := ByID("csharp")
	require.True(t, ok)
	assert.True(t, info.MatchesAlias("C#"))
	assert.True(t, info.MatchesAlias("csharp"))
	assert.False(t, info.MatchesAlias("fsharp"))
}
