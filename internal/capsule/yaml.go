package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/yaml"
)

// YAML documents carry no symbols or imports; the capsule still reports
// line figures, node stats and comment spans.
func newYAMLCapsule() Capsule {
	grammar := yaml.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("yaml"),
		grammar: func(string) *sitter.Language { return grammar },
	})
}
