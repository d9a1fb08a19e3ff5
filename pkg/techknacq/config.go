package techknacq

import (
	"fmt"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/candidate"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/density"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/subsume"
)

// DefaultMaxTerms is used when a caller asks for zero or fewer terms.
const DefaultMaxTerms = 2000

// Config carries the extraction policy knobs.
type Config struct {
	// MinCount drops phrases seen fewer times across all titles.
	MinCount int
	// MaxLength caps phrase length in tokens; 0 means the full title.
	MaxLength int
	// AllowAcronyms lists single tokens admitted even though they are
	// dictionary words. nil means candidate.DefaultAllowAcronyms.
	AllowAcronyms []string
	// Density configures the citation density scorer.
	Density density.Config
	// SubsumeRatio is the threshold for both subsumption passes.
	SubsumeRatio float64
	// Backfill appends unscored frequency survivors, by count, after the
	// density-ranked terms until the requested number is reached.
	Backfill bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinCount:     1,
		Density:      density.DefaultConfig(),
		SubsumeRatio: subsume.DefaultRatio,
	}
}

// Validate checks every knob.
func (c Config) Validate() error {
	if c.MinCount < 0 {
		return fmt.Errorf("min_count %d is negative: %w", c.MinCount, internalerr.ErrInvalidConfig)
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("max_length %d is negative: %w", c.MaxLength, internalerr.ErrInvalidConfig)
	}
	if err := subsume.ValidateRatio(c.SubsumeRatio); err != nil {
		return err
	}
	return c.Density.Validate()
}

func (c Config) allowList() []string {
	if c.AllowAcronyms == nil {
		return candidate.DefaultAllowAcronyms
	}
	return c.AllowAcronyms
}
