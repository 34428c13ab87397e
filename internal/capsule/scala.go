package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/scala"
)

func newScalaCapsule() Capsule {
	grammar := scala.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("scala"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_definition":  SymbolFunction,
			"function_declaration": SymbolFunction,
		},
		types: map[string]SymbolKind{
			"class_definition":  SymbolClass,
			"object_definition": SymbolClass,
			"trait_definition":  SymbolTrait,
			"enum_definition":   SymbolEnum,
		},
		methodParents: map[string]bool{
			"class_definition":  true,
			"object_definition": true,
			"trait_definition":  true,
		},
		imports: map[string]bool{
			"import_declaration": true,
		},
		branches: map[string]bool{
			"if_expression":    true,
			"case_clause":      true,
			"for_expression":   true,
			"while_expression": true,
			"catch_clause":     true,
		},
		halstead: true,
	})
}
