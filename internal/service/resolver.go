package service

import (
	"context"
	"net/netip"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go4.org/netipx"

	"spooffinder/internal/domain"
)

// ASNLookup resolves a plain IP address or domain name to a canonical ASN.
// An empty string means the backend had no answer.
type ASNLookup interface {
	LookupASN(ctx context.Context, target string) string
}

// Resolver turns raw input tokens into canonical ASNs.
type Resolver struct {
	lookup ASNLookup
	logger *zap.Logger
}

// NewResolver builds a Resolver on top of the given lookup backend.
func NewResolver(lookup ASNLookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{lookup: lookup, logger: logger}
}

// Resolution is the outcome of resolving one token.
type Resolution struct {
	Token string
	ASN   domain.ASN // empty when the token did not resolve
	Err   error      // *domain.InvalidRangeError, or nil
}

// Resolve maps one token to its canonical ASN. Strategies are tried in
// order: strip an AS marker, accept all-digit tokens directly, reduce
// CIDR or dash-range notation to its first address, and finally ask the
// lookup backend. An unresolvable token yields ("", nil); malformed
// CIDR/range notation yields a *domain.InvalidRangeError. Empty tokens
// resolve to absent without touching the network.
func (r *Resolver) Resolve(ctx context.Context, token string) (domain.ASN, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", nil
	}

	target := domain.TrimASPrefix(trimmed)
	if domain.IsDigits(target) {
		return domain.ASN(target), nil
	}

	// Anything with a slash or dash is taken for CIDR/range notation,
	// hyphenated domain names included.
	if strings.ContainsAny(target, "/-") {
		first, err := firstAddress(target)
		if err != nil {
			return "", &domain.InvalidRangeError{Token: trimmed, Err: err}
		}
		target = first
	}

	asn := r.lookup.LookupASN(ctx, target)
	if asn == "" {
		r.logger.Debug("token did not resolve", zap.String("token", trimmed))
		return "", nil
	}
	return domain.ASN(asn), nil
}

// ResolveAll resolves every token concurrently. Results keep input order.
func (r *Resolver) ResolveAll(ctx context.Context, tokens []string) []Resolution {
	if len(tokens) == 0 {
		return nil
	}

	results := make([]Resolution, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		i, token := i, token
		wg.Add(1)
		go func() {
			defer wg.Done()
			asn, err := r.Resolve(ctx, token)
			results[i] = Resolution{Token: strings.TrimSpace(token), ASN: asn, Err: err}
		}()
	}
	wg.Wait()
	return results
}

// firstAddress reduces CIDR or dash-range notation to its first address:
// the masked network address for a prefix, the low end for a range.
func firstAddress(token string) (string, error) {
	if strings.Contains(token, "/") {
		prefix, err := netip.ParsePrefix(token)
		if err != nil {
			return "", err
		}
		return prefix.Masked().Addr().String(), nil
	}
	ipRange, err := netipx.ParseIPRange(token)
	if err != nil {
		return "", err
	}
	return ipRange.From().String(), nil
}
