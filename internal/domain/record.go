package domain

import (
	"strings"
	"time"
)

// SpoofRecord is the normalized snapshot of the most recent spoof-test
// session reported for an ASN. The four spoofability flags are independent;
// IPv4 and IPv6 results are not mutually exclusive.
type SpoofRecord struct {
	// Timestamp is when the session was recorded. It is nil when the source
	// omitted the field or reported it in an unexpected format.
	Timestamp  *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	LocalV4    bool       `json:"local_v4" yaml:"local_v4"`
	InternetV4 bool       `json:"internet_v4" yaml:"internet_v4"`
	LocalV6    bool       `json:"local_v6" yaml:"local_v6"`
	InternetV6 bool       `json:"internet_v6" yaml:"internet_v6"`
	ClientV4   string     `json:"client_v4,omitempty" yaml:"client_v4,omitempty"`
	ClientV6   string     `json:"client_v6,omitempty" yaml:"client_v6,omitempty"`
	Country    string     `json:"country,omitempty" yaml:"country,omitempty"`
	ASN4       string     `json:"asn4,omitempty" yaml:"asn4,omitempty"`
	ASN6       string     `json:"asn6,omitempty" yaml:"asn6,omitempty"`
}

// Spoofable reports whether any address family admitted spoofed traffic.
// This is the export qualification predicate.
func (r *SpoofRecord) Spoofable() bool {
	return r.LocalV4 || r.InternetV4 || r.LocalV6 || r.InternetV6
}

// CapabilityLabel renders the true flags as grouped text, e.g.
// "IPv4(Local, Internet) IPv6(Local)". A record with all four flags false
// yields the empty string.
func (r *SpoofRecord) CapabilityLabel() string {
	var groups []string
	if g := flagGroup(r.LocalV4, r.InternetV4); g != "" {
		groups = append(groups, "IPv4("+g+")")
	}
	if g := flagGroup(r.LocalV6, r.InternetV6); g != "" {
		groups = append(groups, "IPv6("+g+")")
	}
	return strings.Join(groups, " ")
}

func flagGroup(local, internet bool) string {
	var parts []string
	if local {
		parts = append(parts, "Local")
	}
	if internet {
		parts = append(parts, "Internet")
	}
	return strings.Join(parts, ", ")
}

// MatchesCountry reports whether the record's country matches filter by
// case-insensitive prefix. Prefix matching lets a two-letter filter accept
// the three-letter codes some sessions report, so "RU" accepts "RUS" while
// "US" rejects it. An empty filter matches everything.
func (r *SpoofRecord) MatchesCountry(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(r.Country), strings.ToUpper(filter))
}

// RankRecord carries the display name and global rank reported for an ASN.
type RankRecord struct {
	Name string `json:"name" yaml:"name"`
	// Rank is nil when the ranking service knows the ASN but has not ranked it.
	Rank *int64 `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// ContactInfo is best-effort contact data extracted from registry text.
// Empty fields mean the registry record carried no extractable value.
type ContactInfo struct {
	Site  string `json:"site,omitempty" yaml:"site,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// EnrichmentResult aggregates everything collected for one ASN. It is
// created by a single enrichment call, consumed by the export writer and the
// report, and never shared mutably.
type EnrichmentResult struct {
	ASN     ASN         `json:"asn" yaml:"asn"`
	Spoof   SpoofRecord `json:"spoof" yaml:"spoof"`
	Rank    RankRecord  `json:"rank" yaml:"rank"`
	Contact ContactInfo `json:"contact" yaml:"contact"`
	Links   []string    `json:"links,omitempty" yaml:"links,omitempty"`
}
