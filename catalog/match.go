/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases groups tokens that all refer to the same province. A label and a
// candidate match when both mention some token of the same group.
var aliases = [][]string{
	{"afyonkarahisar", "afyon", "karahisar"},
	{"sakarya", "adapazar"},
	{"kocaeli", "izmit"},
}

// fold lowercases s with Turkish casing rules and strips diacritics, so that
// "İzmit", "Izmit" and "izmit" all compare equal. Casers and transformer
// chains are stateful, so both are built per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}

	// Turkish lowercasing turns a plain "I" into a dotless "ı"; both spellings
	// of the letter are treated as "i".
	return strings.ReplaceAll(cases.Lower(language.Turkish).String(stripped), "ı", "i")
}

// MatchesProvince reports whether a raw region label refers to the candidate
// province. Exact and prefix comparisons run before the alias table, and
// plain substring containment is the last resort.
func MatchesProvince(rawLabel, candidateName string) bool {
	raw, cand := fold(rawLabel), fold(candidateName)
	if raw == "" || cand == "" {
		return false
	}

	if raw == cand {
		return true
	}

	if strings.HasPrefix(raw, cand) || strings.HasPrefix(cand, raw) {
		return true
	}

	for _, group := range aliases {
		if mentions(raw, group) && mentions(cand, group) {
			return true
		}
	}

	return strings.Contains(raw, cand) || strings.Contains(cand, raw)
}

func mentions(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}

	return false
}
