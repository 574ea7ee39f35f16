// Package service contains the pipeline that turns raw input tokens into
// enriched spoofability results.
//
// # Pipeline
//
// A batch run moves through three stages. The Resolver normalizes every
// token (ASN, IP, CIDR, range, or domain name) into a canonical numeric
// ASN, consulting a lookup backend only when the token itself does not
// carry the number. The Engine then gathers the per-ASN record from its
// sources: the spoof-test session, the global rank, registry contacts,
// and discovered links. The Orchestrator drives both over a worker pool,
// deduplicates, applies the optional country filter and limit, and feeds
// qualifying results to the exporter.
//
// # Sources
//
// Every remote dependency enters through a small consumer interface
// (ASNLookup, SpoofSource, RankSource, ContactSource, SearchBackend,
// CountrySource, Exporter). The adapter package provides the production
// implementations; tests substitute fakes.
//
// # Events
//
// Progress is reported through the BatchObserver callbacks rather than
// direct printing, so the same pipeline serves the interactive console
// and the machine-readable encoders. Callbacks fire from worker
// goroutines and implementations must tolerate that.
package service
