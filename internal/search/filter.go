// Package search implements the free-text transaction filter. Matching is
// case- and diacritic-insensitive substring matching over the searchable
// fields, evaluated independently per transaction with no ranking or scoring.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// stripMarks decomposes to NFD and drops the combining marks, so "Pagadôr"
// normalizes to "pagador".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips diacritics
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Malformed UTF-8; fall back to the raw string
		out = s
	}
	return strings.ToLower(out)
}

// Matches reports whether the transaction matches the free-text query. An
// empty query matches every transaction. Otherwise the normalized query must
// be a substring of the normalized description, payee name or category name.
func Matches(t *domain.Transaction, query string) bool {
	if query == "" {
		return true
	}
	q := Normalize(query)
	if strings.Contains(Normalize(t.Description), q) {
		return true
	}
	if t.PayeeName != nil && strings.Contains(Normalize(*t.PayeeName), q) {
		return true
	}
	if t.CategoryName != nil && strings.Contains(Normalize(*t.CategoryName), q) {
		return true
	}
	return false
}

// Apply returns the transactions matching query, preserving input order
func Apply(transactions []*domain.Transaction, query string) []*domain.Transaction {
	if query == "" {
		return transactions
	}
	filtered := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if Matches(t, query) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
