package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

var cIdentifierKinds = map[string]bool{
	"identifier":       true,
	"field_identifier": true,
}

// cDeclaratorName walks pointer/array/function declarator chains down to
// the underlying identifier.
func cDeclaratorName(n *sitter.Node, src []byte) string {
	decl := n.ChildByFieldName("declarator")
	for decl != nil {
		if cIdentifierKinds[decl.Type()] {
			return nodeText(decl, src)
		}
		next := decl.ChildByFieldName("declarator")
		if next == nil {
			break
		}
		decl = next
	}
	if decl != nil {
		if id := findDescendant(decl, cIdentifierKinds); id != nil {
			return nodeText(id, src)
		}
	}
	return ""
}

func cFunctionName(n *sitter.Node, src []byte) string {
	if n.Type() == "function_definition" {
		return cDeclaratorName(n, src)
	}
	return defaultName(n, src)
}

// cTypeSymbol extracts struct/union/enum/class definitions. Bare
// references like "struct foo x;" have no body and are skipped.
func cTypeSymbol(n *sitter.Node, src []byte) (Symbol, bool) {
	var kind SymbolKind
	switch n.Type() {
	case "struct_specifier", "union_specifier":
		kind = SymbolStruct
	case "enum_specifier":
		kind = SymbolEnum
	case "class_specifier":
		kind = SymbolClass
	default:
		return Symbol{}, false
	}
	if n.ChildByFieldName("body") == nil {
		return Symbol{}, false
	}
	name := childText(n, "name", src)
	if name == "" {
		return Symbol{}, false
	}
	return Symbol{Name: name, Kind: kind}, true
}

var cBranchKinds = map[string]bool{
	"if_statement":           true,
	"for_statement":          true,
	"while_statement":        true,
	"do_statement":           true,
	"case_statement":         true,
	"conditional_expression": true,
}

func newCCapsule() Capsule {
	grammar := c.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("c"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_definition": SymbolFunction,
		},
		imports: map[string]bool{
			"preproc_include": true,
		},
		branches:    cBranchKinds,
		halstead:    true,
		symbolName:  cFunctionName,
		extraSymbol: cTypeSymbol,
	})
}
