package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 4 << 20

// LoadJSONL loads a corpus from a file holding one JSON document per line.
// Malformed lines and documents that fail validation are skipped with a
// warning; a file without any valid document is an error.
func LoadJSONL(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	c, err := ReadJSONL(f, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return c, nil
}

// ReadJSONL decodes documents from r. Titles are passed through CleanTitle.
func ReadJSONL(r io.Reader, logger *slog.Logger) (*Corpus, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			logger.Warn("skipping malformed corpus line", "line", lineNo, "error", err)
			continue
		}
		doc.Title = CleanTitle(doc.Title)
		if err := c.Add(doc); err != nil {
			logger.Warn("skipping corpus document", "line", lineNo, "id", doc.ID, "error", err)
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if c.Len() == 0 {
		return nil, fmt.Errorf("no valid documents found")
	}
	return c, nil
}

// WriteJSONL writes the corpus in the format ReadJSONL accepts.
func WriteJSONL(w io.Writer, c *Corpus) error {
	enc := json.NewEncoder(w)
	var err error
	c.Each(func(d Document) {
		if err != nil {
			return
		}
		err = enc.Encode(d)
	})
	return err
}
