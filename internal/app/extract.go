package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/config"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/metrics"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store"
)

// ExtractOutput is the JSON shape of an extract run.
type ExtractOutput struct {
	RunID    string       `json:"run_id,omitempty"`
	Mode     string       `json:"mode"`
	Docs     int          `json:"docs"`
	Nodes    int          `json:"graph_nodes"`
	Edges    int          `json:"graph_edges"`
	Scored   int          `json:"scored"`
	Unscored int          `json:"unscored"`
	Terms    []store.Term `json:"terms"`
}

// RunExtract loads the corpus, extracts terms and prints them. With --db
// the corpus and the run are persisted; with --metrics-file the run's
// metrics are written as a Prometheus textfile.
func RunExtract(ctx context.Context, flags *pflag.FlagSet, streams Streams) error {
	format, err := outputFormat(flags)
	if err != nil {
		return err
	}
	settings, logger, err := setup(flags, streams)
	if err != nil {
		return err
	}
	config.LogWithLogger(settings, logger)

	comp, err := config.Build(settings)
	if err != nil {
		return err
	}

	var st store.Store
	if settings.Store.Path != "" {
		st, err = openStore(ctx, settings.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	c, err := loadCorpus(ctx, flags, st, logger, true)
	if err != nil {
		return err
	}

	rec := metrics.New()
	ex, err := techknacq.New(techknacq.Options{
		Lexicon:   comp.Lexicon,
		Tokenizer: comp.Tokenizer,
		Config:    settings.Extraction(),
		Logger:    logger,
		Metrics:   rec,
	})
	if err != nil {
		return err
	}

	maxTerms := settings.Extract.MaxTerms
	if maxTerms <= 0 {
		maxTerms = techknacq.DefaultMaxTerms
	}
	res, err := ex.Extract(ctx, c, maxTerms)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	out := ExtractOutput{
		Mode:     res.Mode,
		Docs:     c.Len(),
		Nodes:    res.GraphNodes,
		Edges:    res.GraphEdges,
		Scored:   res.Scored,
		Unscored: res.Unscored,
		Terms:    storeTerms(res.Terms),
	}

	if st != nil {
		run := store.NewRun(res.Mode, maxTerms, c.Len(), out.Terms)
		if err := st.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		out.RunID = run.ID
		logger.Info("Run saved", "id", run.ID, "terms", len(run.Terms))
	}

	if settings.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(settings.Metrics.Textfile); err != nil {
			return err
		}
		logger.Debug("Metrics written", "path", settings.Metrics.Textfile)
	}

	if format == FormatJSON {
		enc := json.NewEncoder(streams.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, t := range out.Terms {
		fmt.Fprintln(streams.Out, t.Phrase)
	}
	return nil
}

func storeTerms(terms []techknacq.Term) []store.Term {
	out := make([]store.Term, len(terms))
	for i, t := range terms {
		out[i] = store.Term{
			Rank:   i + 1,
			Phrase: t.Phrase,
			Value:  t.Value,
			Scored: t.Scored,
			Docs:   t.Docs,
		}
	}
	return out
}
