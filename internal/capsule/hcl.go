package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/hcl"
)

var hclStringKinds = map[string]bool{
	"string_lit":       true,
	"quoted_template":  true,
	"template_literal": true,
}

// HCL is structure-light: no function symbols, zeroed Halstead figures.
// Module source attributes count as imports so Terraform trees still
// produce dependency edges.
func newHCLCapsule() Capsule {
	grammar := hcl.GetLanguage()
	return newTreeCapsule(profile{
		info:    mustInfo("hcl"),
		grammar: func(string) *sitter.Language { return grammar },
		imports: map[string]bool{
			"attribute": true,
		},
		importPaths: func(n *sitter.Node, src []byte) []string {
			var name string
			for i := 0; i < int(n.NamedChildCount()); i++ {
				if child := n.NamedChild(i); child.Type() == "identifier" {
					name = nodeText(child, src)
					break
				}
			}
			if name != "source" {
				return nil
			}
			if str := findDescendant(n, hclStringKinds); str != nil {
				return []string{unquote(nodeText(str, src))}
			}
			return nil
		},
	})
}
