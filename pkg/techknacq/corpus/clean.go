package corpus

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanTitle strips markup and entities that publisher metadata often leaves
// in titles ("<i>k</i>-means", "Q&amp;A") and collapses runs of whitespace.
func CleanTitle(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseSpace(buf.String())
		case html.TextToken:
			buf.Write(z.Text())
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
