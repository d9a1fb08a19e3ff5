// Package density scores phrases by how tightly the documents that use them
// cite one another, compared with what random citation would produce.
//
// For a phrase found in the document set S (size na) of a citation graph
// with n vertices, a document is connected when it shares an edge with
// another member of S. With nca connected documents:
//
//	oh1 = nca·ln(pc) + (na−nca)·ln(1−pc)
//
// is the log-likelihood under a topic model where members connect with
// probability pc, and
//
//	oh0 = Σ_connected ln(1 − (1−p)^li) + Σ_unconnected li·ln(1−p),  p = (na−1)/(n−1)
//
// is the log-likelihood when each of a document's li citations lands on a
// random vertex. The score is oh1 − oh0.
package density

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/citation"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

// Defaults for Config.
const (
	DefaultConnectProb = 0.9
	DefaultMinDocs     = 4
)

// Config holds the scorer's policy knobs.
type Config struct {
	// ConnectProb is pc, the probability that a document in a real topic
	// cluster cites another member. Must lie in (0, 1).
	ConnectProb float64 `mapstructure:"connect_prob" yaml:"connect_prob"`
	// MinDocs is the smallest document set that gets a score. At least 2.
	MinDocs int `mapstructure:"min_docs" yaml:"min_docs"`
	// Workers bounds scoring goroutines; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{ConnectProb: DefaultConnectProb, MinDocs: DefaultMinDocs}
}

// Validate checks the knobs.
func (c Config) Validate() error {
	if !(c.ConnectProb > 0 && c.ConnectProb < 1) {
		return fmt.Errorf("density connect_prob %v outside (0,1): %w", c.ConnectProb, internalerr.ErrInvalidConfig)
	}
	if c.MinDocs < 2 {
		return fmt.Errorf("density min_docs %d below 2: %w", c.MinDocs, internalerr.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("density workers %d is negative: %w", c.Workers, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Scorer computes density scores against one read-only graph.
type Scorer struct {
	graph *citation.Graph
	cfg   Config
}

// NewScorer creates a scorer. The graph must not change while scoring.
func NewScorer(g *citation.Graph, cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		g = citation.NewGraph()
	}
	return &Scorer{graph: g, cfg: cfg}, nil
}

// Detail is the breakdown behind one score.
type Detail struct {
	Docs      int
	Connected int
	H1        float64
	H0        float64
	Score     float64
}

// Evaluate scores one document set. ok is false when the phrase is left
// unscored: too few documents, a degenerate graph, or a non-finite result.
func (s *Scorer) Evaluate(docs ngram.Assoc) (d Detail, ok bool) {
	if docs.Kind() != ngram.KindDocs {
		return Detail{}, false
	}
	ids := docs.IDs()
	na := len(ids)
	n := s.graph.NumNodes()
	if na < s.cfg.MinDocs || na < 2 || n-1 <= 0 || na >= n {
		return Detail{}, false
	}

	miss := 1 - float64(na-1)/float64(n-1)
	logMiss := math.Log(miss)

	nca := 0
	var oh0 float64
	for _, id := range ids {
		li := s.graph.Degree(id)
		if s.connected(id, docs) {
			nca++
			oh0 += math.Log(1 - math.Pow(miss, float64(li)))
		} else {
			oh0 += float64(li) * logMiss
		}
	}

	pc := s.cfg.ConnectProb
	oh1 := float64(nca)*math.Log(pc) + float64(na-nca)*math.Log(1-pc)

	score := oh1 - oh0
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Detail{}, false
	}
	return Detail{Docs: na, Connected: nca, H1: oh1, H0: oh0, Score: score}, true
}

// Score is Evaluate reduced to the score.
func (s *Scorer) Score(docs ngram.Assoc) (float64, bool) {
	d, ok := s.Evaluate(docs)
	return d.Score, ok
}

func (s *Scorer) connected(id string, docs ngram.Assoc) bool {
	found := false
	s.graph.EachNeighbor(id, func(n string) {
		if !found && docs.Has(n) {
			found = true
		}
	})
	return found
}

// Result is the outcome of scoring a table.
type Result struct {
	Scores   map[ngram.NGram]float64
	Unscored []ngram.NGram
}

// ScoreAll scores every document-set entry of t. Phrases are independent, so
// they are split across workers; the result does not depend on scheduling.
// A cancelled ctx aborts the pass and returns its error.
func (s *Scorer) ScoreAll(ctx context.Context, t ngram.Table) (Result, error) {
	keys := t.Keys()
	scores := make([]float64, len(keys))
	scored := make([]bool, len(keys))

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (len(keys) + workers - 1) / workers
	if chunk == 0 {
		chunk = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(keys); start += chunk {
		start := start
		end := min(start+chunk, len(keys))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				scores[i], scored[i] = s.Score(t[keys[i]])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Scores: make(map[ngram.NGram]float64, len(keys))}
	for i, k := range keys {
		if scored[i] {
			res.Scores[k] = scores[i]
		} else {
			res.Unscored = append(res.Unscored, k)
		}
	}
	return res, nil
}
