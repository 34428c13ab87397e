package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

func newKotlinCapsule() Capsule {
	grammar := kotlin.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("kotlin"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_declaration": SymbolFunction,
		},
		types: map[string]SymbolKind{
			"class_declaration":  SymbolClass,
			"object_declaration": SymbolClass,
		},
		methodParents: map[string]bool{
			"class_declaration":  true,
			"object_declaration": true,
		},
		imports: map[string]bool{
			"import_header": true,
		},
		branches: map[string]bool{
			"if_expression":      true,
			"when_entry":         true,
			"for_statement":      true,
			"while_statement":    true,
			"do_while_statement": true,
			"catch_block":        true,
		},
		halstead: true,
	})
}
