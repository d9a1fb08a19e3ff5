// Package lexicon answers the two lexical questions candidate filtering asks:
// is a word a common dictionary word, and is it a stopword.
//
// Word lists are loaded from YAML or plain text files:
//
//	dictionary: [model, models, speech, ...]
//	stopwords:  [the, of, for, ...]
//
// Both lookups match the exact form first and then the lower-cased form, so
// an acronym kept upper-case by the tokenizer still hits a lower-case list.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Oracle is the read-only view the candidate filter consumes.
type Oracle interface {
	IsDictionaryWord(token string) bool
	IsStopword(token string) bool
}

// Lexicon is an in-memory Oracle backed by two word sets.
type Lexicon struct {
	dictionary map[string]struct{}
	stopwords  map[string]struct{}
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		dictionary: make(map[string]struct{}),
		stopwords:  make(map[string]struct{}),
	}
}

// File is the YAML layout accepted by LoadFromYAML.
type File struct {
	Dictionary []string `yaml:"dictionary"`
	Stopwords  []string `yaml:"stopwords"`
}

// LoadFromYAML loads dictionary words and stopwords from a YAML file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex := New()
	lex.AddWords(f.Dictionary...)
	lex.AddStopwords(f.Stopwords...)
	return lex, nil
}

// LoadWordList reads one word per line from path. Blank lines and lines
// starting with '#' are skipped.
func LoadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return words, nil
}

// ReadWordList is LoadWordList over an arbitrary reader.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// AddWords adds dictionary words.
func (l *Lexicon) AddWords(words ...string) {
	addAll(l.dictionary, words)
}

// AddStopwords adds stopwords.
func (l *Lexicon) AddStopwords(words ...string) {
	addAll(l.stopwords, words)
}

// IsDictionaryWord implements Oracle.
func (l *Lexicon) IsDictionaryWord(token string) bool {
	return lookup(l.dictionary, token)
}

// IsStopword implements Oracle.
func (l *Lexicon) IsStopword(token string) bool {
	return lookup(l.stopwords, token)
}

// Stats returns the sizes of both word sets.
func (l *Lexicon) Stats() Stats {
	return Stats{
		DictionaryWords: len(l.dictionary),
		Stopwords:       len(l.stopwords),
	}
}

// Stats holds lexicon sizes.
type Stats struct {
	DictionaryWords int
	Stopwords       int
}

func addAll(set map[string]struct{}, words []string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
}

func lookup(set map[string]struct{}, token string) bool {
	if _, ok := set[token]; ok {
		return true
	}
	lower := strings.ToLower(token)
	if lower == token {
		return false
	}
	_, ok := set[lower]
	return ok
}
