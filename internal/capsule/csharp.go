package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

func newCSharpCapsule() Capsule {
	grammar := csharp.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("csharp"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"method_declaration":       SymbolMethod,
			"constructor_declaration":  SymbolMethod,
			"local_function_statement": SymbolFunction,
		},
		types: map[string]SymbolKind{
			"class_declaration":     SymbolClass,
			"interface_declaration": SymbolInterface,
			"struct_declaration":    SymbolStruct,
			"enum_declaration":      SymbolEnum,
			"record_declaration":    SymbolClass,
		},
		imports: map[string]bool{
			"using_directive": true,
		},
		branches: map[string]bool{
			"if_statement":           true,
			"for_statement":          true,
			"foreach_statement":      true,
			"while_statement":        true,
			"do_statement":           true,
			"switch_section":         true,
			"catch_clause":           true,
			"conditional_expression": true,
		},
		halstead: true,
	})
}
