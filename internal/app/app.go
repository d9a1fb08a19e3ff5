// Package app wires settings, corpus sources, the extractor and the run
// store behind the techknacq commands.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/config"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store/sqlite"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Streams are the writers a command prints to.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// RegisterCorpusFlags adds the corpus source flags.
func RegisterCorpusFlags(fs *pflag.FlagSet) {
	fs.String("corpus", "", "JSONL corpus file (one {id,title,references} object per line)")
}

// RegisterOutputFlags adds --format.
func RegisterOutputFlags(fs *pflag.FlagSet) {
	fs.String("format", FormatText, "Output format: text or json")
}

func outputFormat(flags *pflag.FlagSet) (string, error) {
	format, _ := flags.GetString("format")
	switch format {
	case FormatText, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

// setup resolves settings and the logger for one command.
func setup(flags *pflag.FlagSet, streams Streams) (*config.Settings, *slog.Logger, error) {
	path, _ := flags.GetString("config")
	settings, err := config.Load(path, flags)
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(settings.Log, streams.Err)
	if err != nil {
		return nil, nil, err
	}
	return settings, logger, nil
}

func openStore(ctx context.Context, path string) (store.Store, error) {
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return st, nil
}

// loadCorpus reads the corpus from --corpus or, without it, from the store.
// With writeThrough set, a file corpus is also upserted into the store.
func loadCorpus(ctx context.Context, flags *pflag.FlagSet, st store.Store, logger *slog.Logger, writeThrough bool) (*corpus.Corpus, error) {
	path, _ := flags.GetString("corpus")
	if path == "" {
		if st == nil {
			return nil, fmt.Errorf("either --corpus or --db is required")
		}
		c, err := st.LoadCorpus(ctx)
		if err != nil {
			return nil, fmt.Errorf("load corpus from store: %w", err)
		}
		if c.Len() == 0 {
			return nil, fmt.Errorf("store holds no documents")
		}
		logger.Info("Corpus loaded", "source", "store", "docs", c.Len(), "references", c.HasReferences())
		return c, nil
	}

	c, err := corpus.LoadJSONL(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Corpus loaded", "path", path, "docs", c.Len(), "references", c.HasReferences())

	if st != nil && writeThrough {
		for _, d := range c.Docs() {
			if err := st.UpsertDocument(ctx, d); err != nil {
				return nil, fmt.Errorf("store document %s: %w", d.ID, err)
			}
		}
		logger.Debug("Corpus stored", "docs", c.Len())
	}
	return c, nil
}
