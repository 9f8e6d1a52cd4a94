package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeBreed trims whitespace and title-cases a breed name so that
// "golden retriever", " Golden Retriever " and "GOLDEN RETRIEVER" all
// store and query as "Golden Retriever". Empty input stays empty.
// The Caser is built per call: cases.Caser carries transform state and is
// not safe for concurrent use, and this runs on every request.
func NormalizeBreed(raw string) string {
	b := strings.TrimSpace(raw)
	if b == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(b))
}
