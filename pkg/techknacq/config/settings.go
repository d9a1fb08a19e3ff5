// Package config loads run settings and builds the collaborators an
// extraction run needs.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/candidate"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/density"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ingest"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/subsume"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TECHKNACQ"

// ExtractSettings controls candidate generation.
type ExtractSettings struct {
	MaxTerms  int    `mapstructure:"max_terms"`
	MinCount  int    `mapstructure:"min_count"`
	MaxLength int    `mapstructure:"max_length"`
	Tokenizer string `mapstructure:"tokenizer"` // ingest.KindWord or ingest.KindSegment
}

// FilterSettings controls lexical admissibility.
type FilterSettings struct {
	AllowAcronyms []string `mapstructure:"allow_acronyms"`
}

// SubsumeSettings controls both subsumption passes.
type SubsumeSettings struct {
	Ratio float64 `mapstructure:"ratio"`
}

// RankSettings controls final ordering.
type RankSettings struct {
	Backfill bool `mapstructure:"backfill"`
}

// LexiconSettings locates the lexicon files. Path is a YAML lexicon; the
// other two are plain word lists merged into it.
type LexiconSettings struct {
	Path           string `mapstructure:"path"`
	DictionaryPath string `mapstructure:"dictionary_path"`
	StopwordsPath  string `mapstructure:"stopwords_path"`
}

// StoreSettings locates the run database. An empty path disables
// persistence.
type StoreSettings struct {
	Path string `mapstructure:"path"`
}

// MetricsSettings locates the Prometheus textfile output.
type MetricsSettings struct {
	Textfile string `mapstructure:"textfile"`
}

// LogSettings selects the slog handler.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Settings is the full run configuration.
type Settings struct {
	Extract ExtractSettings `mapstructure:"extract"`
	Filter  FilterSettings  `mapstructure:"filter"`
	Density density.Config  `mapstructure:"density"`
	Subsume SubsumeSettings `mapstructure:"subsume"`
	Rank    RankSettings    `mapstructure:"rank"`
	Lexicon LexiconSettings `mapstructure:"lexicon"`
	Store   StoreSettings   `mapstructure:"store"`
	Metrics MetricsSettings `mapstructure:"metrics"`
	Log     LogSettings     `mapstructure:"log"`
}

// flagKeys maps CLI flag names to setting keys.
var flagKeys = map[string]string{
	"max-terms":      "extract.max_terms",
	"min-count":      "extract.min_count",
	"max-length":     "extract.max_length",
	"tokenizer":      "extract.tokenizer",
	"allow-acronyms": "filter.allow_acronyms",
	"connect-prob":   "density.connect_prob",
	"min-docs":       "density.min_docs",
	"workers":        "density.workers",
	"subsume-ratio":  "subsume.ratio",
	"backfill":       "rank.backfill",
	"lexicon":        "lexicon.path",
	"dictionary":     "lexicon.dictionary_path",
	"stopwords":      "lexicon.stopwords_path",
	"db":             "store.path",
	"metrics-file":   "metrics.textfile",
	"log-level":      "log.level",
	"log-format":     "log.format",
}

// RegisterCommonFlags adds the flags every command understands.
func RegisterCommonFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db", "", "SQLite database for documents and runs")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text or json")
}

// RegisterFlags adds the common and extraction flags to fs. Only flags the
// user sets override file and environment values.
func RegisterFlags(fs *pflag.FlagSet) {
	RegisterCommonFlags(fs)
	fs.Int("max-terms", techknacq.DefaultMaxTerms, "Maximum number of terms to return")
	fs.Int("min-count", 1, "Drop phrases seen fewer times across all titles")
	fs.Int("max-length", 0, "Maximum phrase length in tokens (0 = whole title)")
	fs.String("tokenizer", ingest.KindWord, "Title tokenizer: word or segment")
	fs.StringSlice("allow-acronyms", nil, "Dictionary words admitted as single-token terms (default: built-in list)")
	fs.Float64("connect-prob", density.DefaultConnectProb, "Within-topic citation probability")
	fs.Int("min-docs", density.DefaultMinDocs, "Smallest document set that receives a density score")
	fs.Int("workers", 0, "Density scoring goroutines (0 = GOMAXPROCS)")
	fs.Float64("subsume-ratio", subsume.DefaultRatio, "Subsumption threshold")
	fs.Bool("backfill", false, "Fill remaining slots with unscored phrases by frequency")
	fs.String("lexicon", "", "YAML lexicon with dictionary and stopwords lists")
	fs.String("dictionary", "", "Plain-text dictionary word list")
	fs.String("stopwords", "", "Plain-text stopword list")
	fs.String("metrics-file", "", "Write Prometheus metrics to this textfile")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("extract.max_terms", techknacq.DefaultMaxTerms)
	v.SetDefault("extract.min_count", 1)
	v.SetDefault("extract.max_length", 0)
	v.SetDefault("extract.tokenizer", ingest.KindWord)
	v.SetDefault("filter.allow_acronyms", candidate.DefaultAllowAcronyms)
	v.SetDefault("density.connect_prob", density.DefaultConnectProb)
	v.SetDefault("density.min_docs", density.DefaultMinDocs)
	v.SetDefault("density.workers", 0)
	v.SetDefault("subsume.ratio", subsume.DefaultRatio)
	v.SetDefault("rank.backfill", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Default returns the settings Load produces with no file, env or flags.
func Default() *Settings {
	s, err := Load("", nil)
	if err != nil {
		// Defaults are constants; failing here is a programming error.
		panic(err)
	}
	return s
}

// Load resolves settings. Priority: CLI flags > TECHKNACQ_* environment >
// config file (when path is set) > defaults. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings without touching the filesystem.
func (s *Settings) Validate() error {
	var errs []error
	if s.Extract.MaxTerms < 0 {
		errs = append(errs, fmt.Errorf("extract.max_terms %d is negative", s.Extract.MaxTerms))
	}
	if _, err := ingest.New(s.Extract.Tokenizer); err != nil {
		errs = append(errs, fmt.Errorf("extract.tokenizer: %v", err))
	}
	if _, err := parseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch s.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", s.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
	}
	return s.Extraction().Validate()
}

// Extraction converts the settings into the extractor's policy config.
func (s *Settings) Extraction() techknacq.Config {
	return techknacq.Config{
		MinCount:      s.Extract.MinCount,
		MaxLength:     s.Extract.MaxLength,
		AllowAcronyms: s.Filter.AllowAcronyms,
		Density:       s.Density,
		SubsumeRatio:  s.Subsume.Ratio,
		Backfill:      s.Rank.Backfill,
	}
}
