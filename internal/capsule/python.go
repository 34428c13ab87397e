package capsule

import (
	"bytes"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func newPythonCapsule() Capsule {
	grammar := python.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("python"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_definition": SymbolFunction,
		},
		types: map[string]SymbolKind{
			"class_definition": SymbolClass,
		},
		methodParents: map[string]bool{
			"class_definition": true,
		},
		imports: map[string]bool{
			"import_statement":      true,
			"import_from_statement": true,
		},
		branches: map[string]bool{
			"if_statement":           true,
			"elif_clause":            true,
			"for_statement":          true,
			"while_statement":        true,
			"except_clause":          true,
			"conditional_expression": true,
			"case_clause":            true,
		},
		booleanTokens: map[string]bool{"and": true, "or": true},
		halstead:      true,
		importPaths: func(n *sitter.Node, src []byte) []string {
			switch n.Type() {
			case "import_from_statement":
				if m := n.ChildByFieldName("module_name"); m != nil {
					return []string{nodeText(m, src)}
				}
			case "import_statement":
				// import a, b as c collects every module name.
				var out []string
				for i := 0; i < int(n.NamedChildCount()); i++ {
					child := n.NamedChild(i)
					switch child.Type() {
					case "dotted_name":
						out = append(out, nodeText(child, src))
					case "aliased_import":
						if name := child.ChildByFieldName("name"); name != nil {
							out = append(out, nodeText(name, src))
						}
					}
				}
				return out
			}
			return nil
		},
		diagnose: func(src []byte) []string {
			if bytes.Contains(src, []byte("__main__")) {
				return []string{"contains __main__ entrypoint"}
			}
			return nil
		},
	})
}
