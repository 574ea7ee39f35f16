package domain

import "strings"

// ASN is a canonical autonomous system number: decimal digits only, with no
// "AS" prefix. The zero value means no ASN was resolved.
type ASN string

// Prefixed returns the conventional display form, e.g. "AS65000".
func (a ASN) Prefixed() string {
	return "AS" + string(a)
}

// Valid reports whether a holds a canonical identifier.
func (a ASN) Valid() bool {
	return IsDigits(string(a))
}

func (a ASN) String() string {
	return string(a)
}

// TrimASPrefix removes a single leading "AS" marker, case-insensitively, from
// a raw token. The remainder is returned unchanged whether or not it is an
// actual number; classification happens downstream.
func TrimASPrefix(token string) string {
	if len(token) >= 2 && strings.EqualFold(token[:2], "as") {
		return token[2:]
	}
	return token
}

// IsDigits reports whether s is non-empty and consists of ASCII decimal
// digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
