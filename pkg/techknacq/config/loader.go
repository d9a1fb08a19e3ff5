package config

import (
	"fmt"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ingest"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/lexicon"
)

// Components holds the collaborators built from Settings.
type Components struct {
	Lexicon   *lexicon.Lexicon
	Tokenizer ingest.Tokenizer
}

// Build loads the lexicon files and constructs the tokenizer. At least one
// lexicon source is required: extraction cannot judge candidates without
// one.
func Build(s *Settings) (*Components, error) {
	comp := &Components{}

	ls := s.Lexicon
	if ls.Path == "" && ls.DictionaryPath == "" && ls.StopwordsPath == "" {
		return nil, fmt.Errorf("no lexicon configured: %w", internalerr.ErrInvalidConfig)
	}

	if ls.Path != "" {
		lex, err := lexicon.LoadFromYAML(ls.Path)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.New()
	}

	if ls.DictionaryPath != "" {
		words, err := lexicon.LoadWordList(ls.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		comp.Lexicon.AddWords(words...)
	}

	if ls.StopwordsPath != "" {
		words, err := lexicon.LoadWordList(ls.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		comp.Lexicon.AddStopwords(words...)
	}

	tok, err := ingest.New(s.Extract.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}
	comp.Tokenizer = tok

	return comp, nil
}
