// Package domain defines the core domain types for the spooffinder spoofability lookup tool.
//
// This package contains the fundamental entities and value objects shared by the
// resolution and enrichment pipeline: canonical ASN identifiers, spoof-test
// snapshots, ranking data, registry contacts, and the aggregate result type.
//
// # Core Types
//
// ASN is a canonical autonomous system identifier, held as a digits-only string
// with no "AS" prefix. Batch deduplication and all upstream lookups key on this
// form.
//
// SpoofRecord is the normalized snapshot of the most recent spoof-test session
// reported for an ASN: four independent spoofability flags (local/internet for
// each IP version), client addresses, country code, and a nullable timestamp.
//
// RankRecord carries the display name and global rank reported for an ASN.
// A rank record is required for enrichment; an ASN without one yields no result.
//
// ContactInfo is best-effort registry contact data (site, email, phone),
// extracted from unstructured registry text. Empty fields mean nothing was
// found, not an error.
//
// EnrichmentResult aggregates everything collected for one ASN. It is created
// by a single enrichment call and never shared mutably.
//
// # Absence Model
//
// Upstream sources are unreliable and unauthenticated, so absence is an
// ordinary value: nil records, empty strings, and nil timestamps all mean "the
// source had nothing usable." Only two conditions are surfaced as errors:
// ErrNoData marks an ASN whose required sources carried no record, and
// InvalidRangeError marks a token that looked like a CIDR block or address
// range but did not parse as one. Both are scoped to their unit of work and
// never abort a batch.
//
// # Design Principles
//
// - Immutable value objects; results are never mutated after construction
// - No network, file, or logging dependencies
// - Absence expressed through explicit optionals, not exceptions
package domain
