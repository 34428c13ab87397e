package keystone

import (
	"github.com/dverbeek/keystone/internal/capsule"
	"github.com/dverbeek/keystone/internal/config"
	"github.com/dverbeek/keystone/internal/graph"
	"github.com/dverbeek/keystone/internal/lang"
	"github.com/dverbeek/keystone/internal/metrics"
	"github.com/dverbeek/keystone/internal/patterns"
	"github.com/dverbeek/keystone/internal/scoring"
	"github.com/dverbeek/keystone/internal/store"
)

// Public type aliases for internal analysis types used in the Engine API.
// These are Go type aliases (=), identical to the internal types at compile
// time. External consumers use these names; no conversion is needed.

type Source = capsule.Source
type ParseOptions = capsule.Options
type Document = capsule.Document
type Symbol = capsule.Symbol
type Import = capsule.Import
type ParseError = capsule.ParseError
type Language = lang.Info
type Metrics = metrics.Metrics
type Detection = patterns.Detection
type Weights = scoring.Weights
type Score = scoring.Score
type RankedFile = scoring.RankedFile
type Graph = graph.Graph
type GraphEdge = graph.Edge
type GraphStats = graph.Stats
type Config = config.Config
type PageRankConfig = config.PageRank
type Store = store.Store

// Sentinel errors surfaced by [Engine.Parse] and [Engine.AnalyzeFile].
var (
	ErrUnsupportedLanguage = capsule.ErrUnsupportedLanguage
	ErrOversized           = capsule.ErrOversized
)
