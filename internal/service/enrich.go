package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"spooffinder/internal/domain"
)

// SpoofSource provides normalized spoof-test sessions.
type SpoofSource interface {
	LatestSession(ctx context.Context, asn domain.ASN) *domain.SpoofRecord
}

// RankSource provides display names and global ranks.
type RankSource interface {
	Rank(ctx context.Context, asn domain.ASN) *domain.RankRecord
}

// ContactSource provides registry contact details.
type ContactSource interface {
	Contacts(ctx context.Context, asn domain.ASN) domain.ContactInfo
}

// SearchBackend is one pluggable link-discovery engine.
type SearchBackend interface {
	Name() string
	Search(ctx context.Context, query string, pages int) []string
}

// Engine enriches canonical ASNs with spoofability, rank, contact, and
// link data.
type Engine struct {
	spoof    SpoofSource
	rank     RankSource
	contacts ContactSource
	backends []SearchBackend
	pages    int
	logger   *zap.Logger
}

// EngineConfig wires an Engine. Spoof, Rank, and Contacts are required;
// an empty backend list degrades link discovery to always-absent.
type EngineConfig struct {
	Spoof       SpoofSource
	Rank        RankSource
	Contacts    ContactSource
	Backends    []SearchBackend
	SearchPages int
	Logger      *zap.Logger
}

// NewEngine builds an Engine from the given sources.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.SearchPages <= 0 {
		cfg.SearchPages = 2
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		spoof:    cfg.Spoof,
		rank:     cfg.Rank,
		contacts: cfg.Contacts,
		backends: cfg.Backends,
		pages:    cfg.SearchPages,
		logger:   cfg.Logger,
	}
}

// Enrich gathers all data for one ASN. The return is three-valued: a
// result and nil error on success; nil and domain.ErrNoData when a
// required source carried no record; nil and nil when the result was
// discarded by countryFilter, which is a silent drop rather than an
// error.
func (e *Engine) Enrich(ctx context.Context, asn domain.ASN, countryFilter string) (*domain.EnrichmentResult, error) {
	var (
		spoofRec *domain.SpoofRecord
		rankRec  *domain.RankRecord
	)

	// Spoof and rank are independent sources; fetch them together but
	// join on both before deciding anything.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spoofRec = e.spoof.LatestSession(gctx, asn)
		return nil
	})
	g.Go(func() error {
		rankRec = e.rank.Rank(gctx, asn)
		return nil
	})
	g.Wait()

	if spoofRec == nil || rankRec == nil {
		return nil, domain.ErrNoData
	}

	if !spoofRec.MatchesCountry(countryFilter) {
		e.logger.Debug("result dropped by country filter",
			zap.String("asn", string(asn)),
			zap.String("country", spoofRec.Country),
			zap.String("filter", countryFilter))
		return nil, nil
	}

	// Contacts and the name-keyed search run together; the site-keyed
	// search needs the contact result first.
	var (
		contact   domain.ContactInfo
		nameLinks []string
	)
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		contact = e.contacts.Contacts(g2ctx, asn)
		return nil
	})
	g2.Go(func() error {
		nameLinks = e.findLinks(g2ctx, rankRec.Name+" server")
		return nil
	})
	g2.Wait()

	links := nameLinks
	if contact.Site != "" {
		links = append(links, e.findLinks(ctx, contact.Site)...)
	}

	return &domain.EnrichmentResult{
		ASN:     asn,
		Spoof:   *spoofRec,
		Rank:    *rankRec,
		Contact: contact,
		Links:   links,
	}, nil
}

// findLinks walks the backends in order and returns the first non-empty
// result set. No backends, or none with results, yields nil.
func (e *Engine) findLinks(ctx context.Context, query string) []string {
	for _, b := range e.backends {
		links := b.Search(ctx, query, e.pages)
		if len(links) > 0 {
			return links
		}
		e.logger.Debug("search backend returned nothing",
			zap.String("backend", b.Name()),
			zap.String("query", query))
	}
	return nil
}
