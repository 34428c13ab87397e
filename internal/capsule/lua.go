package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/lua"
)

func newLuaCapsule() Capsule {
	grammar := lua.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("lua"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_declaration":                SymbolFunction,
			"function_definition_statement":       SymbolFunction,
			"local_function_definition_statement": SymbolFunction,
		},
		imports: map[string]bool{
			"function_call": true,
			"call":          true,
		},
		branches: map[string]bool{
			"if_statement":     true,
			"elseif_statement": true,
			"elseif":           true,
			"for_statement":    true,
			"while_statement":  true,
			"repeat_statement": true,
		},
		booleanTokens: map[string]bool{"and": true, "or": true},
		halstead:      true,
		importPaths: func(n *sitter.Node, src []byte) []string {
			name := n.ChildByFieldName("name")
			if name == nil || nodeText(name, src) != "require" {
				return nil
			}
			if str := findDescendant(n, map[string]bool{"string": true}); str != nil {
				return []string{unquote(nodeText(str, src))}
			}
			return nil
		},
	})
}
