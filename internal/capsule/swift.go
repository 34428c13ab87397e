package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
)

func newSwiftCapsule() Capsule {
	grammar := swift.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("swift"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_declaration": SymbolFunction,
		},
		types: map[string]SymbolKind{
			"class_declaration":    SymbolClass,
			"protocol_declaration": SymbolInterface,
		},
		methodParents: map[string]bool{
			"class_declaration":    true,
			"protocol_declaration": true,
		},
		imports: map[string]bool{
			"import_declaration": true,
		},
		branches: map[string]bool{
			"if_statement":           true,
			"guard_statement":        true,
			"switch_entry":           true,
			"for_statement":          true,
			"while_statement":        true,
			"repeat_while_statement": true,
			"catch_block":            true,
			"ternary_expression":     true,
		},
		halstead: true,
	})
}
