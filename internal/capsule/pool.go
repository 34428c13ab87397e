package capsule

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// parserPool reuses tree-sitter parser instances for one grammar.
// A parser instance is not safe for concurrent use, so callers check one
// out, parse, and return it; the pool grows to the peak number of
// concurrent parses and holds instances for the life of the capsule.
type parserPool struct {
	grammar *sitter.Language

	mu   sync.Mutex
	free []*sitter.Parser
}

func newParserPool(grammar *sitter.Language) *parserPool {
	return &parserPool{grammar: grammar}
}

func (p *parserPool) get() *sitter.Parser {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		parser := p.free[n-1]
		p.free = p.free[:n-1]
		return parser
	}
	parser := sitter.NewParser()
	parser.SetLanguage(p.grammar)
	return parser
}

func (p *parserPool) put(parser *sitter.Parser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, parser)
}
