package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLookupMatchesExactThenLower(t *testing.T) {
	lex := New()
	lex.AddWords("model", "Speech")
	lex.AddStopwords("the", "For")

	tests := []struct {
		name   string
		fn     func(string) bool
		token  string
		expect bool
	}{
		{"dict exact", lex.IsDictionaryWord, "model", true},
		{"dict lowered", lex.IsDictionaryWord, "MODEL", true},
		{"dict exact mixed case entry", lex.IsDictionaryWord, "Speech", true},
		{"dict lower does not raise", lex.IsDictionaryWord, "speech", false},
		{"dict miss", lex.IsDictionaryWord, "markov", false},
		{"stop lowered", lex.IsStopword, "The", true},
		{"stop exact", lex.IsStopword, "For", true},
		{"stop miss", lex.IsStopword, "markov", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.token); got != tt.expect {
				t.Errorf("lookup(%q) = %v, want %v", tt.token, got, tt.expect)
			}
		})
	}
}

func TestAddIgnoresBlank(t *testing.T) {
	lex := New()
	lex.AddWords("", "  ", "word")
	if got := lex.Stats().DictionaryWords; got != 1 {
		t.Errorf("expected 1 dictionary word, got %d", got)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `dictionary:
  - model
  - synthesis
stopwords:
  - the
  - of
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	stats := lex.Stats()
	if stats.DictionaryWords != 2 || stats.Stopwords != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if !lex.IsDictionaryWord("synthesis") || !lex.IsStopword("of") {
		t.Error("loaded words not found")
	}
}

func TestLoadFromYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFromYAML(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("dictionary: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFromYAML(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestReadWordList(t *testing.T) {
	words, err := ReadWordList(strings.NewReader("# comment\nalpha\n\n  beta  \n"))
	if err != nil {
		t.Fatalf("ReadWordList: %v", err)
	}
	if len(words) != 2 || words[0] != "alpha" || words[1] != "beta" {
		t.Errorf("ReadWordList() = %v", words)
	}
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(path, []byte("the\nof\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWordList(path)
	if err != nil {
		t.Fatalf("LoadWordList: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("expected 2 words, got %d", len(words))
	}
}
