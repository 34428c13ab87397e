package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// jsBranchKinds is shared by the JavaScript and TypeScript capsules.
var jsBranchKinds = map[string]bool{
	"if_statement":       true,
	"for_statement":      true,
	"for_in_statement":   true,
	"while_statement":    true,
	"do_statement":       true,
	"switch_case":        true,
	"ternary_expression": true,
	"catch_clause":       true,
}

// jsFunctionBinding names a function bound through a variable declarator,
// e.g. const handler = async () => { ... }.
func jsFunctionBinding(n *sitter.Node, src []byte) (Symbol, bool) {
	if n.Type() != "variable_declarator" {
		return Symbol{}, false
	}
	value := n.ChildByFieldName("value")
	if value == nil {
		return Symbol{}, false
	}
	switch value.Type() {
	case "arrow_function", "function", "function_expression", "generator_function":
	default:
		return Symbol{}, false
	}
	name := childText(n, "name", src)
	if name == "" {
		return Symbol{}, false
	}
	sig := name
	if params := value.ChildByFieldName("parameters"); params != nil {
		sig += collapseWhitespace(nodeText(params, src))
	}
	return Symbol{Name: name, Kind: SymbolFunction, Signature: sig}, true
}

func newJavaScriptCapsule() Capsule {
	grammar := javascript.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("javascript"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_declaration":           SymbolFunction,
			"generator_function_declaration": SymbolFunction,
			"method_definition":              SymbolMethod,
		},
		types: map[string]SymbolKind{
			"class_declaration": SymbolClass,
		},
		imports: map[string]bool{
			"import_statement": true,
		},
		branches:    jsBranchKinds,
		halstead:    true,
		extraSymbol: jsFunctionBinding,
	})
}
