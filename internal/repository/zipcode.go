package repository

import (
	"strings"
	"unicode"
)

// NormalizeZipcode keeps only the digits of a postal code.
func NormalizeZipcode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalPlace is the stored and compared form of a city or state name.
func CanonicalPlace(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Canonical returns the entry with a normalized zipcode and canonical place names.
func (e ZipEntry) Canonical() ZipEntry {
	return ZipEntry{
		Zipcode:       NormalizeZipcode(e.Zipcode),
		City:          CanonicalPlace(e.City),
		State:         CanonicalPlace(e.State),
		DestinationID: strings.TrimSpace(e.DestinationID),
	}
}
