package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

func newJavaCapsule() Capsule {
	grammar := java.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("java"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"method_declaration":      SymbolMethod,
			"constructor_declaration": SymbolMethod,
		},
		types: map[string]SymbolKind{
			"class_declaration":     SymbolClass,
			"record_declaration":    SymbolClass,
			"interface_declaration": SymbolInterface,
			"enum_declaration":      SymbolEnum,
		},
		imports: map[string]bool{
			"import_declaration": true,
		},
		branches: map[string]bool{
			"if_statement":           true,
			"for_statement":          true,
			"enhanced_for_statement": true,
			"while_statement":        true,
			"do_statement":           true,
			"switch_label":           true,
			"catch_clause":           true,
			"ternary_expression":     true,
		},
		halstead: true,
	})
}
