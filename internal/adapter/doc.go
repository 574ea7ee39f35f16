// Package adapter implements the upstream data-source clients for spooffinder.
//
// Adapters are thin, source-specific clients over public, unauthenticated
// endpoints. Each one owns exactly one upstream wire format and translates it
// into domain types; everything above this package works with those types and
// never sees a URL or a payload.
//
// # Absence Model
//
// The sources are unreliable: they time out, rate-limit, change shape, and
// disappear. Every adapter therefore reports absence (nil record,
// empty string, empty slice) instead of returning errors. Failures are logged
// by the shared Client and swallowed; a caller cannot tell a timeout from a
// miss. Nothing here retries.
//
// # ASN Lookup Backends
//
// GeoIPClient resolves IP addresses and domain names to ASNs through an
// ip-geolocation HTTP service (ipapi.co wire format).
//
// CymruClient does the same over DNS using the Team Cymru origin zone:
// reversed-octet TXT queries against origin.asn.cymru.com, answers
// pipe-delimited. IPv4 only.
//
// Exactly one of the two backs the token resolver, selected by config.
//
// # Enrichment Sources
//
// SpooferClient fetches spoof-test sessions from the CAIDA Spoofer API and
// normalizes the most recent one into a domain.SpoofRecord.
//
// ASRankClient fetches display name and global rank from the CAIDA ASRank
// API.
//
// RDAPClient pulls registry autnum records as raw text and extracts contact
// details by pattern matching.
//
// CountryClient enumerates the ASNs registered to a country, preferring a
// statistics API and falling back to scraping an HTML listing page.
//
// # Search Backends
//
// DuckDuckGo and Mojeek scrape their respective HTML search interfaces for
// link discovery. They satisfy the search-backend interface the enrichment
// engine consumes; which ones run, and in what order, is wired at startup
// from config.
package adapter
