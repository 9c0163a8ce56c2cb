// Package arabictext prepares Arabic strings for page-oriented renderers that
// draw glyphs in storage order. Domain strings are stored in logical order;
// this package applies contextual letter shaping (via garabic) and reorders
// the result into visual right-to-left order, keeping embedded numbers and
// latin fragments readable left-to-right.
package arabictext

import (
	"strings"

	"github.com/AbdullahDiaa/garabic"
)

// Shape returns the visual form of s: contextually shaped Arabic letters in
// right-to-left display order. Strings without Arabic letters pass through
// unchanged.
func Shape(s string) string {
	if !hasArabic(s) {
		return s
	}
	return visual(garabic.Shape(s))
}

func hasArabic(s string) bool {
	for _, r := range s {
		if isArabic(r) {
			return true
		}
	}
	return false
}

func isArabic(r rune) bool {
	// Base block, presentation forms A and B (shaped output lands in the
	// presentation form blocks).
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// isWeakLTR marks characters that must keep left-to-right order inside a
// reversed line: digits, latin letters and the punctuation that glues numbers
// together (decimal points, phone number "+", time ranges).
func isWeakLTR(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		return true
	}
	return strings.ContainsRune(".,+-:%", r)
}

// visual reverses the whole line, then restores the original order of every
// maximal run of weak-LTR characters. This is a deliberately small subset of
// the Unicode bidi algorithm, sufficient for invoice lines mixing Arabic
// labels with quantities and prices.
func visual(s string) string {
	runes := []rune(s)
	reverse(runes)

	start := -1
	for i, r := range runes {
		switch {
		case isWeakLTR(r) && start < 0:
			start = i
		case !isWeakLTR(r) && start >= 0:
			reverse(runes[start:i])
			start = -1
		}
	}
	if start >= 0 {
		reverse(runes[start:])
	}
	return string(runes)
}

func reverse(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}
