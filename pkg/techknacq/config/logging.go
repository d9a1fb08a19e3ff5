package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a slog logger writing to w according to s.
func NewLogger(s LogSettings, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(s.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(s.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q must be debug, info, warn or error", s)
	}
}

// LogWithLogger logs the resolved settings, skipping unset optional paths.
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: extract",
		"max_terms", s.Extract.MaxTerms,
		"min_count", s.Extract.MinCount,
		"max_length", s.Extract.MaxLength,
		"tokenizer", s.Extract.Tokenizer,
	)
	logger.InfoContext(ctx, "Config: density",
		"connect_prob", s.Density.ConnectProb,
		"min_docs", s.Density.MinDocs,
		"workers", s.Density.Workers,
	)
	logger.InfoContext(ctx, "Config: subsume.ratio", "value", s.Subsume.Ratio)
	logger.InfoContext(ctx, "Config: rank.backfill", "value", s.Rank.Backfill)
	logger.InfoContext(ctx, "Config: filter.allow_acronyms", "count", len(s.Filter.AllowAcronyms))

	if s.Lexicon.Path != "" {
		logger.InfoContext(ctx, "Config: lexicon.path", "value", s.Lexicon.Path)
	}
	if s.Lexicon.DictionaryPath != "" {
		logger.InfoContext(ctx, "Config: lexicon.dictionary_path", "value", s.Lexicon.DictionaryPath)
	}
	if s.Lexicon.StopwordsPath != "" {
		logger.InfoContext(ctx, "Config: lexicon.stopwords_path", "value", s.Lexicon.StopwordsPath)
	}
	if s.Store.Path != "" {
		logger.InfoContext(ctx, "Config: store.path", "value", s.Store.Path)
	}
	if s.Metrics.Textfile != "" {
		logger.InfoContext(ctx, "Config: metrics.textfile", "value", s.Metrics.Textfile)
	}
}
