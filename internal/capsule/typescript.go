package capsule

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// The TypeScript capsule handles both plain TypeScript and TSX; the
// grammar is selected per file so "ts", "typescript" and "tsx" all
// resolve here.
func newTypeScriptCapsule() Capsule {
	tsGrammar := typescript.GetLanguage()
	tsxGrammar := tsx.GetLanguage()
	return newTreeCapsule(profile{
		info: mustInfo("typescript"),
		grammar: func(path string) *sitter.Language {
			if strings.EqualFold(filepath.Ext(path), ".tsx") {
				return tsxGrammar
			}
			return tsGrammar
		},
		functions: map[string]SymbolKind{
			"function_declaration":           SymbolFunction,
			"generator_function_declaration": SymbolFunction,
			"method_definition":              SymbolMethod,
			"method_signature":               SymbolMethod,
		},
		types: map[string]SymbolKind{
			"class_declaration":          SymbolClass,
			"abstract_class_declaration": SymbolClass,
			"interface_declaration":      SymbolInterface,
			"enum_declaration":           SymbolEnum,
			"type_alias_declaration":     SymbolType,
		},
		imports: map[string]bool{
			"import_statement": true,
		},
		branches:    jsBranchKinds,
		halstead:    true,
		extraSymbol: jsFunctionBinding,
	})
}
