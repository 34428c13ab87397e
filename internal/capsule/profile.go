package capsule

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dverbeek/keystone/internal/lang"
)

// profile describes how one language's grammar maps onto the common
// document contract. Most capsules are pure tables; the hook funcs cover
// grammars whose shapes don't fit the shared field layout (C declarator
// chains, Elixir macro-style definitions, HCL blocks).
type profile struct {
	info lang.Info

	// grammar returns the tree-sitter grammar for a file path. Most
	// languages ignore the path; TypeScript selects the tsx grammar
	// for .tsx files.
	grammar func(path string) *sitter.Language

	// functions maps definition node kinds to function-like symbol kinds.
	functions map[string]SymbolKind
	// types maps definition node kinds to type-like symbol kinds.
	types map[string]SymbolKind
	// methodParents lists ancestor node kinds that reclassify an
	// enclosed function symbol as a method (e.g. python class bodies,
	// rust impl blocks).
	methodParents map[string]bool
	// imports lists node kinds that introduce imports.
	imports map[string]bool
	// branches lists node kinds that add one decision point each.
	branches map[string]bool
	// booleanTokens lists operator token texts counted as decision
	// points. Nil means the default {"&&", "||"}.
	booleanTokens map[string]bool

	// halstead enables operator/operand classification. Off for
	// configuration formats, which report zeroed Halstead figures.
	halstead bool

	// symbolName overrides default name extraction (field "name", then
	// first identifier-like child).
	symbolName func(n *sitter.Node, src []byte) string
	// importPaths overrides default import path extraction.
	importPaths func(n *sitter.Node, src []byte) []string
	// extraSymbol inspects nodes not matched by the tables and may
	// produce a symbol (JS arrow bindings, Elixir def calls).
	extraSymbol func(n *sitter.Node, src []byte) (Symbol, bool)
	// branchNode inspects nodes not matched by the branches table and
	// reports extra decision points (Elixir if/case/cond calls).
	branchNode func(n *sitter.Node, src []byte) bool
	// diagnose produces per-language informational diagnostics from the
	// raw source (e.g. the python __main__ entrypoint note).
	diagnose func(src []byte) []string
	// metadata produces free-form per-language extras from the parsed
	// root (e.g. the Go package name).
	metadata func(root *sitter.Node, src []byte) map[string]string
}

// mustInfo resolves a language id registered in the lang package and
// panics on a wiring mistake, which can only happen at init time.
func mustInfo(id string) lang.Info {
	info, ok := lang.ByID(id)
	if !ok {
		panic(fmt.Sprintf("capsule: unknown language id %q", id))
	}
	return info
}

// treeCapsule implements Capsule for one grammar-backed language profile.
// The shared walk in walk.go does all extraction; the profile supplies
// the language-specific node tables.
type treeCapsule struct {
	p profile

	mu    sync.Mutex
	pools map[*sitter.Language]*parserPool
}

func newTreeCapsule(p profile) *treeCapsule {
	return &treeCapsule{p: p, pools: make(map[*sitter.Language]*parserPool)}
}

func (c *treeCapsule) Language() lang.Info { return c.p.info }

func (c *treeCapsule) pool(grammar *sitter.Language) *parserPool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pl, ok := c.pools[grammar]
	if !ok {
		pl = newParserPool(grammar)
		c.pools[grammar] = pl
	}
	return pl
}

// Parse produces a Document for one source unit. Identical input and
// options always yield identical output.
func (c *treeCapsule) Parse(ctx context.Context, src Source, content []byte, opts Options) (*Document, error) {
	if opts.MaxBytes > 0 && len(content) > opts.MaxBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)",
			src.Path, ErrOversized, len(content), opts.MaxBytes)
	}

	doc := &Document{
		Source:   src,
		Language: c.p.info.ID,
		Stats: Stats{
			ByteLength:  len(content),
			TotalTokens: len(bytes.Fields(content)),
		},
	}

	grammar := c.p.grammar(src.Path)
	pl := c.pool(grammar)
	parser := pl.get()
	tree, err := parser.ParseCtx(ctx, nil, content)
	pl.put(parser)
	if err != nil {
		return nil, &ParseError{Path: src.Path, Language: c.p.info.ID, Err: err}
	}
	defer tree.Close()

	w := newWalker(&c.p, content, opts, doc)
	w.visit(tree.RootNode())
	w.finish()

	if c.p.diagnose != nil {
		doc.Diagnostics = append(doc.Diagnostics, c.p.diagnose(content)...)
	}
	if c.p.metadata != nil {
		if md := c.p.metadata(tree.RootNode(), content); len(md) > 0 {
			doc.Metadata = md
		}
	}

	return doc, nil
}
