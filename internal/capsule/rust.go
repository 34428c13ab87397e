package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

func newRustCapsule() Capsule {
	grammar := rust.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("rust"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_item":           SymbolFunction,
			"function_signature_item": SymbolFunction,
		},
		types: map[string]SymbolKind{
			"struct_item": SymbolStruct,
			"enum_item":   SymbolEnum,
			"trait_item":  SymbolTrait,
			"union_item":  SymbolStruct,
			"mod_item":    SymbolModule,
		},
		methodParents: map[string]bool{
			"impl_item":  true,
			"trait_item": true,
		},
		imports: map[string]bool{
			"use_declaration": true,
		},
		branches: map[string]bool{
			"if_expression":        true,
			"if_let_expression":    true,
			"while_expression":     true,
			"while_let_expression": true,
			"for_expression":       true,
			"loop_expression":      true,
			"match_arm":            true,
		},
		halstead: true,
	})
}
