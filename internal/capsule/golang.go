package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func newGoCapsule() Capsule {
	grammar := golang.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("go"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_declaration": SymbolFunction,
			"method_declaration":   SymbolMethod,
		},
		imports: map[string]bool{
			"import_spec": true,
		},
		branches: map[string]bool{
			"if_statement":       true,
			"for_statement":      true,
			"expression_case":    true,
			"type_case":          true,
			"communication_case": true,
		},
		halstead: true,
		// type_spec covers structs, interfaces and aliases; the kind
		// depends on the underlying type node.
		extraSymbol: func(n *sitter.Node, src []byte) (Symbol, bool) {
			if n.Type() != "type_spec" {
				return Symbol{}, false
			}
			name := childText(n, "name", src)
			if name == "" {
				return Symbol{}, false
			}
			kind := SymbolType
			if typeNode := n.ChildByFieldName("type"); typeNode != nil {
				switch typeNode.Type() {
				case "struct_type":
					kind = SymbolStruct
				case "interface_type":
					kind = SymbolInterface
				}
			}
			return Symbol{Name: name, Kind: kind}, true
		},
		metadata: func(root *sitter.Node, src []byte) map[string]string {
			pkg := findDescendant(root, map[string]bool{"package_clause": true})
			if pkg == nil {
				return nil
			}
			name := childText(pkg, "name", src)
			if name == "" {
				if id := findDescendant(pkg, map[string]bool{"package_identifier": true, "identifier": true}); id != nil {
					name = nodeText(id, src)
				}
			}
			if name == "" {
				return nil
			}
			return map[string]string{"package": name}
		},
	})
}
