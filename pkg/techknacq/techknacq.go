// Package techknacq discovers technical terms in a document collection and
// ranks them by how strongly the documents using a term cite each other.
//
// The pipeline runs titles through n-gram extraction, lexical filtering,
// plural folding and frequency subsumption. When the corpus carries
// citations, the surviving phrases are scored against the citation graph,
// subsumed again on score and ranked; otherwise they are ranked by
// frequency.
package techknacq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/candidate"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/citation"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/density"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ingest"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/lexicon"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/metrics"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/rank"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/subsume"
)

// Ranking modes reported in Result.Mode.
const (
	ModeDensity   = "density"
	ModeFrequency = "frequency"
)

// Options configures an Extractor.
type Options struct {
	Lexicon   lexicon.Oracle
	Tokenizer ingest.Tokenizer
	Config    Config
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

// Extractor runs term extraction. It holds no per-run state and may be used
// for several corpora in turn or concurrently.
type Extractor struct {
	cfg     Config
	grams   *ngram.Extractor
	filter  *candidate.Filter
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates an Extractor. A missing lexicon or tokenizer, or an invalid
// config, is a configuration error.
func New(opts Options) (*Extractor, error) {
	if opts.Lexicon == nil {
		return nil, fmt.Errorf("lexicon is required: %w", internalerr.ErrInvalidConfig)
	}
	if opts.Tokenizer == nil {
		return nil, fmt.Errorf("tokenizer is required: %w", internalerr.ErrInvalidConfig)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		cfg: opts.Config,
		grams: ngram.NewExtractor(opts.Tokenizer, ngram.Options{
			MinCount:  opts.Config.MinCount,
			MaxLength: opts.Config.MaxLength,
		}),
		filter:  candidate.NewFilter(opts.Lexicon, opts.Config.allowList()),
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Term is one ranked phrase.
type Term struct {
	Phrase string
	// Value is the density score when Scored, the occurrence count
	// otherwise.
	Value  float64
	Scored bool
	// Docs is the number of documents whose title holds the phrase; zero in
	// frequency mode.
	Docs int
}

// StageCount is the number of candidates left after a stage.
type StageCount struct {
	Stage      string
	Candidates int
}

// Result is the full outcome of one extraction run.
type Result struct {
	Mode       string
	Terms      []Term
	Stages     []StageCount
	GraphNodes int
	GraphEdges int
	Scored     int
	Unscored   int
}

// ExtractTerms returns up to maxTerms phrases, best first. maxTerms <= 0
// means DefaultMaxTerms.
func (e *Extractor) ExtractTerms(ctx context.Context, c *corpus.Corpus, maxTerms int) ([]string, error) {
	res, err := e.Extract(ctx, c, maxTerms)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(res.Terms))
	for i, t := range res.Terms {
		out[i] = t.Phrase
	}
	return out, nil
}

// Extract runs the pipeline and returns ranked terms with stage figures.
// There is no resumption point: a cancelled ctx discards the whole run.
func (e *Extractor) Extract(ctx context.Context, c *corpus.Corpus, maxTerms int) (Result, error) {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	var res Result
	stage := func(name string, start time.Time, n int) error {
		res.Stages = append(res.Stages, StageCount{Stage: name, Candidates: n})
		e.metrics.Candidates(name, n)
		e.metrics.Observe(name, start)
		e.logger.DebugContext(ctx, "stage complete", "stage", name, "candidates", n, "elapsed", time.Since(start))
		return ctx.Err()
	}

	start := time.Now()
	counts := e.grams.Counts(c.Titles())
	if err := stage(metrics.StageExtract, start, len(counts)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	filtered := e.filter.Apply(counts)
	if err := stage(metrics.StageFilter, start, len(filtered)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	merged, err := candidate.MergePlurals(filtered)
	if err != nil {
		return Result{}, fmt.Errorf("merge plurals: %w", err)
	}
	if err := stage(metrics.StagePlural, start, len(merged)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	freq := subsume.Apply(merged.Sizes(), e.cfg.SubsumeRatio)
	if err := stage(metrics.StageSubsumeFreq, start, len(freq)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	graph := citation.Build(c)
	res.GraphNodes, res.GraphEdges = graph.NumNodes(), graph.NumEdges()
	if err := stage(metrics.StageGraph, start, len(freq)); err != nil {
		return Result{}, err
	}

	byCount := rank.Rank[struct{}](freq, nil, false, 0)
	if graph.Empty() {
		res.Mode = ModeFrequency
		start = time.Now()
		entries := rank.Truncate(byCount, maxTerms)
		res.Terms = toTerms(entries, nil)
		_ = stage(metrics.StageRank, start, len(res.Terms))
		e.finish(ctx, &res, c.Len())
		return res, nil
	}

	res.Mode = ModeDensity
	start = time.Now()
	docSets, err := candidate.MergePlurals(e.grams.DocSets(c, e.filter.Admissible))
	if err != nil {
		return Result{}, fmt.Errorf("merge plural document sets: %w", err)
	}
	docSets = ngram.Restrict(docSets, freq)
	if err := stage(metrics.StageDocSets, start, len(docSets)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	scorer, err := density.NewScorer(graph, e.cfg.Density)
	if err != nil {
		return Result{}, err
	}
	scoredRes, err := scorer.ScoreAll(ctx, docSets)
	if err != nil {
		return Result{}, fmt.Errorf("score phrases: %w", err)
	}
	res.Scored, res.Unscored = len(scoredRes.Scores), len(scoredRes.Unscored)
	e.metrics.Scored(res.Scored, res.Unscored)
	if err := stage(metrics.StageScore, start, len(scoredRes.Scores)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	scores := subsume.Apply(scoredRes.Scores, e.cfg.SubsumeRatio)
	if err := stage(metrics.StageSubsumeScore, start, len(scores)); err != nil {
		return Result{}, err
	}

	start = time.Now()
	entries := rank.Rank(scores, freq, true, maxTerms)
	if e.cfg.Backfill {
		entries = rank.Backfill(entries, byCount, maxTerms)
	}
	res.Terms = toTerms(entries, docSets)
	_ = stage(metrics.StageRank, start, len(res.Terms))
	e.finish(ctx, &res, c.Len())
	return res, nil
}

func (e *Extractor) finish(ctx context.Context, res *Result, docs int) {
	e.metrics.Run(res.Mode)
	e.logger.InfoContext(ctx, "term extraction complete",
		"mode", res.Mode,
		"documents", docs,
		"graph_nodes", res.GraphNodes,
		"graph_edges", res.GraphEdges,
		"scored", res.Scored,
		"unscored", res.Unscored,
		"terms", len(res.Terms),
	)
}

func toTerms(entries []rank.Entry, docSets ngram.Table) []Term {
	out := make([]Term, len(entries))
	for i, en := range entries {
		out[i] = Term{
			Phrase: en.Phrase.String(),
			Value:  en.Value,
			Scored: en.Scored,
		}
		if a, ok := docSets[en.Phrase]; ok {
			out[i].Docs = int(a.Size())
		}
	}
	return out
}
