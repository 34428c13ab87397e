package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/toml"
)

func newTOMLCapsule() Capsule {
	grammar := toml.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("toml"),
		grammar: func(string) *sitter.Language { return grammar },
	})
}
