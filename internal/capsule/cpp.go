package capsule

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

func newCppCapsule() Capsule {
	grammar := cpp.GetLanguage()

	branches := make(map[string]bool, len(cBranchKinds)+2)
	for k := range cBranchKinds {
		branches[k] = true
	}
	branches["catch_clause"] = true
	branches["for_range_loop"] = true

	return newTreeCapsule(profile{
		info:    mustInfo("cpp"),
		grammar: func(string) *sitter.Language { return grammar },
		functions: map[string]SymbolKind{
			"function_definition": SymbolFunction,
		},
		methodParents: map[string]bool{
			"class_specifier":  true,
			"struct_specifier": true,
		},
		imports: map[string]bool{
			"preproc_include": true,
		},
		branches:    branches,
		halstead:    true,
		symbolName:  cFunctionName,
		extraSymbol: cTypeSymbol,
	})
}
