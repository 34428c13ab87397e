package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

func newRubyCapsule() Capsule {
	grammar := ruby.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("ruby"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"method":           SymbolFunction,
			"singleton_method": SymbolMethod,
		},
		types: map[string]SymbolKind{
			"class":  SymbolClass,
			"module": SymbolModule,
		},
		methodParents: map[string]bool{
			"class":           true,
			"module":          true,
			"singleton_class": true,
		},
		imports: map[string]bool{
			"call": true,
		},
		branches: map[string]bool{
			"if":              true,
			"unless":          true,
			"elsif":           true,
			"while":           true,
			"until":           true,
			"for":             true,
			"when":            true,
			"rescue":          true,
			"conditional":     true,
			"if_modifier":     true,
			"unless_modifier": true,
			"while_modifier":  true,
			"until_modifier":  true,
		},
		booleanTokens: map[string]bool{"&&": true, "||": true, "and": true, "or": true},
		halstead:      true,
		// require, require_relative and load are plain method calls.
		importPaths: func(n *sitter.Node, src []byte) []string {
			method := childText(n, "method", src)
			switch method {
			case "require", "require_relative", "load":
			default:
				return nil
			}
			args := n.ChildByFieldName("arguments")
			if args == nil {
				return nil
			}
			for i := 0; i < int(args.ChildCount()); i++ {
				child := args.Child(i)
				if child.Type() == "string" {
					return []string{unquote(nodeText(child, src))}
				}
			}
			return nil
		},
	})
}
