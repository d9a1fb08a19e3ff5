package ngram

import (
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ingest"
)

// Options bound n-gram extraction.
type Options struct {
	// MinCount drops phrases seen fewer times. Values below 1 mean 1.
	MinCount int
	// MaxLength caps phrase length in tokens; 0 means the full title.
	MaxLength int
}

// Extractor turns titles into n-grams of every length from 1 up to the
// title's token count (or MaxLength).
type Extractor struct {
	tokenizer ingest.Tokenizer
	opts      Options
}

// NewExtractor creates an extractor over the given tokenizer.
func NewExtractor(tok ingest.Tokenizer, opts Options) *Extractor {
	if opts.MinCount < 1 {
		opts.MinCount = 1
	}
	if opts.MaxLength < 0 {
		opts.MaxLength = 0
	}
	return &Extractor{tokenizer: tok, opts: opts}
}

// Grams returns every contiguous n-gram of title in order of length, then
// position. Overlapping occurrences are all returned.
func (e *Extractor) Grams(title string) []NGram {
	tokens := ingest.Normalize(e.tokenizer, title)
	maxLen := len(tokens)
	if e.opts.MaxLength > 0 && e.opts.MaxLength < maxLen {
		maxLen = e.opts.MaxLength
	}

	var grams []NGram
	for n := 1; n <= maxLen; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, New(tokens[i:i+n]...))
		}
	}
	return grams
}

// Counts counts n-gram occurrences across titles. Every occurrence adds one,
// including repeats inside a single title. Phrases below MinCount are dropped.
func (e *Extractor) Counts(titles []string) Table {
	counts := make(map[NGram]int64)
	for _, title := range titles {
		for _, g := range e.Grams(title) {
			counts[g]++
		}
	}

	out := make(Table, len(counts))
	for g, n := range counts {
		if n < int64(e.opts.MinCount) {
			continue
		}
		out[g] = Count(n)
	}
	return out
}

// DocSets maps each n-gram to the ids of the documents whose title contains
// it. When keep is non-nil only n-grams accepted by keep are recorded.
func (e *Extractor) DocSets(c *corpus.Corpus, keep func(NGram) bool) Table {
	sets := make(map[NGram][]string)
	c.Each(func(d corpus.Document) {
		seen := make(map[NGram]struct{})
		for _, g := range e.Grams(d.Title) {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			if keep != nil && !keep(g) {
				continue
			}
			sets[g] = append(sets[g], d.ID)
		}
	})

	out := make(Table, len(sets))
	for g, ids := range sets {
		out[g] = Docs(ids...)
	}
	return out
}
