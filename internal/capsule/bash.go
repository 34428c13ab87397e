package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
)

func newBashCapsule() Capsule {
	grammar := bash.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("bash"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_definition": SymbolFunction,
		},
		imports: map[string]bool{
			"command": true,
		},
		branches: map[string]bool{
			"if_statement":          true,
			"elif_clause":           true,
			"for_statement":         true,
			"c_style_for_statement": true,
			"while_statement":       true,
			"case_item":             true,
		},
		halstead: true,
		// "source file.sh" and ". file.sh" pull other scripts in.
		importPaths: func(n *sitter.Node, src []byte) []string {
			cmd := childText(n, "name", src)
			if cmd != "source" && cmd != "." {
				return nil
			}
			arg := n.ChildByFieldName("argument")
			if arg == nil {
				return nil
			}
			return []string{unquote(nodeText(arg, src))}
		},
	})
}
