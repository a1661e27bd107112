// Package l10n holds the add-on's user-visible strings.
package l10n

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String identifiers, numbered the way the host's language files number them.
const (
	ImportingItems       = 32001
	AuthenticationOK     = 32002
	AuthenticationFailed = 32003
	ProviderUnreachable  = 32004
)

var messages = map[int]string{
	ImportingItems:       "Importing %s items...",
	AuthenticationOK:     "Successfully connected to %s",
	AuthenticationFailed: "Failed to connect to %s",
	ProviderUnreachable:  "%s is not reachable",
}

// Localize returns the normalized string for id, or "" if id is unknown.
func Localize(id int) string {
	return Normalize(messages[id])
}

// Localizef formats the string for id with args.
func Localizef(id int, args ...any) string {
	format, ok := messages[id]
	if !ok {
		return ""
	}
	return Normalize(fmt.Sprintf(format, args...))
}

// Normalize decomposes s and drops everything outside ASCII, so accented
// names survive hosts whose dialogs cannot render them.
func Normalize(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
