// Package corpus holds the documents a term-extraction run works over:
// identifiers, titles and outgoing reference lists.
package corpus

import (
	"fmt"
	"strings"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
)

// Document is one corpus entry. References may point at ids that are not in
// the corpus and may repeat.
type Document struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	References []string `json:"references,omitempty"`
}

// Validate checks the fields a document needs to take part in extraction.
// An empty title is legal: it contributes no n-grams.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("document id is required: %w", internalerr.ErrInvalidInput)
	}
	return nil
}

// UniqueReferences returns the non-empty reference ids of d in first-seen
// order with duplicates dropped.
func (d *Document) UniqueReferences() []string {
	if len(d.References) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(d.References))
	out := make([]string, 0, len(d.References))
	for _, ref := range d.References {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

func copyDocument(d Document) Document {
	out := d
	if d.References != nil {
		out.References = append([]string(nil), d.References...)
	}
	return out
}
