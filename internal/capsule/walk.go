package capsule

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// defaultCommentKinds covers the comment node kinds across every bundled
// grammar; kinds a grammar doesn't define simply never appear.
var defaultCommentKinds = map[string]bool{
	"comment":           true,
	"line_comment":      true,
	"block_comment":     true,
	"multiline_comment": true,
	"doc_comment":       true,
}

var defaultBooleanTokens = map[string]bool{"&&": true, "||": true}

// nameChildKinds are child node kinds accepted as a definition's name
// when the grammar exposes no "name" field.
var nameChildKinds = map[string]bool{
	"identifier":        true,
	"simple_identifier": true,
	"field_identifier":  true,
	"type_identifier":   true,
	"name":              true,
	"constant":          true,
	"word":              true,
}

// stringKinds are node kinds treated as quoted path literals.
var stringKinds = map[string]bool{
	"string":                     true,
	"string_literal":             true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"system_lib_string":          true,
	"quoted_template":            true,
	"string_lit":                 true,
}

// walker drives one depth-first pass over a syntax tree, collecting
// symbols, imports, comments and the raw metric tallies in a single
// traversal.
type walker struct {
	p    *profile
	src  []byte
	opts Options
	doc  *Document

	operators map[string]int
	operands  map[string]int

	// funcStack holds indexes into doc.Symbols for enclosing function
	// symbols; decision points increment the innermost one.
	funcStack   []int
	branchDepth int
	typeDepth   int
	errorNodes  int

	boolTokens map[string]bool
}

func newWalker(p *profile, src []byte, opts Options, doc *Document) *walker {
	w := &walker{p: p, src: src, opts: opts, doc: doc}
	if p.halstead {
		w.operators = make(map[string]int)
		w.operands = make(map[string]int)
	}
	w.boolTokens = p.booleanTokens
	if w.boolTokens == nil {
		w.boolTokens = defaultBooleanTokens
	}
	return w
}

func (w *walker) visit(n *sitter.Node) {
	w.doc.Stats.TotalNodes++
	kind := n.Type()

	if kind == "ERROR" || n.IsMissing() {
		w.errorNodes++
	}

	if defaultCommentKinds[kind] {
		w.doc.CommentSpans = append(w.doc.CommentSpans, Span{
			Start: int(n.StartByte()),
			End:   int(n.EndByte()),
		})
		if w.opts.CollectComments {
			w.doc.Comments = append(w.doc.Comments, Comment{
				Text:      nodeText(n, w.src),
				StartLine: int(n.StartPoint().Row) + 1,
				EndLine:   int(n.EndPoint().Row) + 1,
			})
		}
		return
	}

	isBranch := w.p.branches[kind]
	if !isBranch && w.p.branchNode != nil {
		isBranch = w.p.branchNode(n, w.src)
	}
	if isBranch {
		w.countBranch(true)
	}

	symIdx := -1
	if w.opts.CollectSymbols {
		if sym, ok := w.symbolAt(n, kind); ok {
			w.doc.Symbols = append(w.doc.Symbols, sym)
			symIdx = len(w.doc.Symbols) - 1
		}
	}

	if w.p.imports[kind] {
		w.collectImports(n)
	}

	if n.ChildCount() == 0 {
		w.leaf(n)
		return
	}

	pushedFunc := false
	if symIdx >= 0 {
		k := w.doc.Symbols[symIdx].Kind
		if k == SymbolFunction || k == SymbolMethod {
			w.funcStack = append(w.funcStack, symIdx)
			pushedFunc = true
		}
	}
	if isBranch {
		w.branchDepth++
	}
	if w.p.methodParents[kind] {
		w.typeDepth++
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.visit(n.Child(i))
	}

	if w.p.methodParents[kind] {
		w.typeDepth--
	}
	if isBranch {
		w.branchDepth--
	}
	if pushedFunc {
		w.funcStack = w.funcStack[:len(w.funcStack)-1]
	}
}

// symbolAt extracts a symbol for a definition node, or reports false.
// Definitions the grammar leaves unnamed (anonymous functions, unnamed
// structs) are skipped rather than failing the extraction.
func (w *walker) symbolAt(n *sitter.Node, kind string) (Symbol, bool) {
	if k, ok := w.p.functions[kind]; ok {
		name := w.name(n)
		if name == "" {
			return Symbol{}, false
		}
		if k == SymbolFunction && w.typeDepth > 0 {
			k = SymbolMethod
		}
		return Symbol{
			Name:       name,
			Kind:       k,
			StartLine:  int(n.StartPoint().Row) + 1,
			EndLine:    int(n.EndPoint().Row) + 1,
			Signature:  signature(name, n, w.src),
			Complexity: 1,
		}, true
	}
	if k, ok := w.p.types[kind]; ok {
		name := w.name(n)
		if name == "" {
			return Symbol{}, false
		}
		return Symbol{
			Name:      name,
			Kind:      k,
			StartLine: int(n.StartPoint().Row) + 1,
			EndLine:   int(n.EndPoint().Row) + 1,
		}, true
	}
	if w.p.extraSymbol != nil {
		sym, ok := w.p.extraSymbol(n, w.src)
		if !ok || sym.Name == "" {
			return Symbol{}, false
		}
		if sym.StartLine == 0 {
			sym.StartLine = int(n.StartPoint().Row) + 1
			sym.EndLine = int(n.EndPoint().Row) + 1
		}
		if sym.Kind == SymbolFunction && w.typeDepth > 0 {
			sym.Kind = SymbolMethod
		}
		if (sym.Kind == SymbolFunction || sym.Kind == SymbolMethod) && sym.Complexity == 0 {
			sym.Complexity = 1
		}
		return sym, true
	}
	return Symbol{}, false
}

func (w *walker) name(n *sitter.Node) string {
	if w.p.symbolName != nil {
		return w.p.symbolName(n, w.src)
	}
	return defaultName(n, w.src)
}

func (w *walker) leaf(n *sitter.Node) {
	if !n.IsNamed() {
		text := nodeText(n, w.src)
		if w.boolTokens[text] {
			w.countBranch(false)
		}
		if w.p.halstead && text != "" {
			w.operators[text]++
		}
		return
	}
	if w.p.halstead {
		if text := nodeText(n, w.src); text != "" {
			w.operands[text]++
		}
	}
}

// countBranch records one decision point. Nesting constructs carry a
// depth penalty in the cognitive tally; boolean short-circuits count flat.
func (w *walker) countBranch(nesting bool) {
	w.doc.Counts.Branches++
	if nesting {
		w.doc.Counts.Cognitive += 1 + w.branchDepth
	} else {
		w.doc.Counts.Cognitive++
	}
	if len(w.funcStack) > 0 {
		w.doc.Symbols[w.funcStack[len(w.funcStack)-1]].Complexity++
	}
}

func (w *walker) collectImports(n *sitter.Node) {
	var paths []string
	if w.p.importPaths != nil {
		paths = w.p.importPaths(n, w.src)
	} else {
		paths = genericImportPaths(n, w.src)
	}
	line := int(n.StartPoint().Row) + 1
	for _, p := range paths {
		if p == "" {
			continue
		}
		w.doc.Imports = append(w.doc.Imports, Import{Path: p, Line: line})
	}
}

func (w *walker) finish() {
	if w.p.halstead {
		w.doc.Counts.DistinctOperators = len(w.operators)
		w.doc.Counts.DistinctOperands = len(w.operands)
		for _, c := range w.operators {
			w.doc.Counts.TotalOperators += c
		}
		for _, c := range w.operands {
			w.doc.Counts.TotalOperands += c
		}
	}
	if w.errorNodes > 0 {
		w.doc.Diagnostics = append(w.doc.Diagnostics,
			fmt.Sprintf("source contains %d syntax error node(s)", w.errorNodes))
	}
}

func nodeText(n *sitter.Node, src []byte) string {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}

func childText(n *sitter.Node, field string, src []byte) string {
	if c := n.ChildByFieldName(field); c != nil {
		return nodeText(c, src)
	}
	return ""
}

// defaultName reads the "name" field, falling back to the first
// identifier-like named child.
func defaultName(n *sitter.Node, src []byte) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if nameChildKinds[child.Type()] {
			return nodeText(child, src)
		}
	}
	return ""
}

// signature builds "name(params) -> ret" from the common grammar fields.
// Returns "" when the node has no parameters field.
func signature(name string, n *sitter.Node, src []byte) string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return ""
	}
	sig := name + collapseWhitespace(nodeText(params, src))
	for _, field := range []string{"result", "return_type", "type"} {
		if ret := n.ChildByFieldName(field); ret != nil {
			// TypeScript-style annotation nodes carry the leading colon.
			text := strings.TrimSpace(strings.TrimPrefix(collapseWhitespace(nodeText(ret, src)), ":"))
			if text != "" {
				sig += " -> " + text
			}
			break
		}
	}
	return sig
}

// genericImportPaths extracts an import path from the common grammar
// shapes: a known field, then a quoted child, then the first named child.
func genericImportPaths(n *sitter.Node, src []byte) []string {
	for _, field := range []string{"path", "source", "module_name", "name", "argument"} {
		if c := n.ChildByFieldName(field); c != nil {
			return []string{importText(c, src)}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if stringKinds[child.Type()] {
			return []string{unquote(nodeText(child, src))}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if !defaultCommentKinds[child.Type()] {
			return []string{collapseWhitespace(nodeText(child, src))}
		}
	}
	return nil
}

func importText(n *sitter.Node, src []byte) string {
	text := nodeText(n, src)
	if stringKinds[n.Type()] {
		return unquote(text)
	}
	return collapseWhitespace(text)
}

// unquote strips one layer of quotes or include angle brackets.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		switch {
		case first == '"' && last == '"',
			first == '\'' && last == '\'',
			first == '`' && last == '`',
			first == '<' && last == '>':
			return s[1 : len(s)-1]
		}
	}
	return s
}

// findDescendant returns the first descendant, depth-first, whose kind is
// in kinds.
func findDescendant(n *sitter.Node, kinds map[string]bool) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if kinds[child.Type()] {
			return child
		}
		if found := findDescendant(child, kinds); found != nil {
			return found
		}
	}
	return nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
