package app

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
)

// RunExport writes the stored corpus as JSONL, the format --corpus reads.
func RunExport(ctx context.Context, flags *pflag.FlagSet, streams Streams) error {
	settings, logger, err := setup(flags, streams)
	if err != nil {
		return err
	}
	if settings.Store.Path == "" {
		return fmt.Errorf("--db is required")
	}

	st, err := openStore(ctx, settings.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.LoadCorpus(ctx)
	if err != nil {
		return fmt.Errorf("load corpus from store: %w", err)
	}
	if err := corpus.WriteJSONL(streams.Out, c); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	logger.Debug("Corpus exported", "docs", c.Len())
	return nil
}
