// Package email holds the address checks shared by the identity stores.
package email

import (
	"net/mail"
	"strings"
)

// IsValid reports whether address is a bare RFC 5322 addr-spec with a
// dotted domain. Display-name forms like "Rider <a@b.com>" are rejected.
func IsValid(address string) bool {
	if address == "" || strings.TrimSpace(address) != address {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return false
	}
	at := strings.LastIndexByte(address, '@')
	domain := address[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

// Normalize returns the key used for case-insensitive uniqueness.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
