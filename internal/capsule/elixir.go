package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/elixir"
)

// Elixir definitions, imports and conditionals are all macro calls, so
// this capsule classifies call nodes by their target identifier.

func elixirCallTarget(n *sitter.Node, src []byte) string {
	t := n.ChildByFieldName("target")
	if t == nil || t.Type() != "identifier" {
		return ""
	}
	return nodeText(t, src)
}

func elixirArguments(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "arguments" {
			return child
		}
	}
	return nil
}

// elixirDefName digs the function name out of a def head, which may be a
// bare identifier, a call, or a guarded head (call `when` guard).
func elixirDefName(args *sitter.Node, src []byte) string {
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	head := args.NamedChild(0)
	if head.Type() == "binary_operator" {
		if left := head.ChildByFieldName("left"); left != nil {
			head = left
		}
	}
	switch head.Type() {
	case "call":
		return elixirCallTarget(head, src)
	case "identifier":
		return nodeText(head, src)
	}
	return ""
}

func newElixirCapsule() Capsule {
	grammar := elixir.GetLanguage()
	return newTreeCapsule(profile{
		info:          mustInfo("elixir"),
		grammar:       func(string) *sitter.Language { return grammar },
		imports:       map[string]bool{"call": true},
		booleanTokens: map[string]bool{"&&": true, "||": true, "and": true, "or": true},
		halstead:      true,
		extraSymbol: func(n *sitter.Node, src []byte) (Symbol, bool) {
			if n.Type() != "call" {
				return Symbol{}, false
			}
			switch elixirCallTarget(n, src) {
			case "def", "defp", "defmacro", "defmacrop":
				name := elixirDefName(elixirArguments(n), src)
				if name == "" {
					return Symbol{}, false
				}
				return Symbol{Name: name, Kind: SymbolFunction}, true
			case "defmodule":
				args := elixirArguments(n)
				if args == nil || args.NamedChildCount() == 0 {
					return Symbol{}, false
				}
				head := args.NamedChild(0)
				if head.Type() != "alias" {
					return Symbol{}, false
				}
				return Symbol{Name: nodeText(head, src), Kind: SymbolModule}, true
			}
			return Symbol{}, false
		},
		branchNode: func(n *sitter.Node, src []byte) bool {
			if n.Type() != "call" {
				return false
			}
			switch elixirCallTarget(n, src) {
			case "if", "unless", "case", "cond", "with":
				return true
			}
			return false
		},
		importPaths: func(n *sitter.Node, src []byte) []string {
			switch elixirCallTarget(n, src) {
			case "import", "require", "alias", "use":
			default:
				return nil
			}
			args := elixirArguments(n)
			if args == nil || args.NamedChildCount() == 0 {
				return nil
			}
			if head := args.NamedChild(0); head.Type() == "alias" {
				return []string{nodeText(head, src)}
			}
			return nil
		},
	})
}
