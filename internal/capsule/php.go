package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

var phpUseNameKinds = map[string]bool{
	"qualified_name": true,
	"namespace_name": true,
	"name":           true,
}

var phpStringKinds = map[string]bool{
	"string":          true,
	"encapsed_string": true,
}

func newPHPCapsule() Capsule {
	grammar := php.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("php"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_definition": SymbolFunction,
			"method_declaration":  SymbolMethod,
		},
		types: map[string]SymbolKind{
			"class_declaration":     SymbolClass,
			"interface_declaration": SymbolInterface,
			"enum_declaration":      SymbolEnum,
			"trait_declaration":     SymbolTrait,
		},
		imports: map[string]bool{
			"namespace_use_declaration": true,
			"require_expression":        true,
			"require_once_expression":   true,
			"include_expression":        true,
			"include_once_expression":   true,
		},
		branches: map[string]bool{
			"if_statement":           true,
			"else_if_clause":         true,
			"for_statement":          true,
			"foreach_statement":      true,
			"while_statement":        true,
			"do_statement":           true,
			"case_statement":         true,
			"catch_clause":           true,
			"conditional_expression": true,
		},
		halstead: true,
		importPaths: func(n *sitter.Node, src []byte) []string {
			if n.Type() == "namespace_use_declaration" {
				if name := findDescendant(n, phpUseNameKinds); name != nil {
					return []string{nodeText(name, src)}
				}
				return nil
			}
			if str := findDescendant(n, phpStringKinds); str != nil {
				return []string{unquote(nodeText(str, src))}
			}
			return nil
		},
	})
}
