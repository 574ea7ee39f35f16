package adapter

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"spooffinder/internal/domain"
)

// countryHrefPattern matches ASN anchors on registry listing pages,
// e.g. href="/AS174".
var countryHrefPattern = regexp.MustCompile(`href="[^"]*/AS(\d+)"`)

// CountryClient enumerates the ASNs registered to a two-letter country
// code.
type CountryClient struct {
	client   *Client
	statsURL string
	pageURL  string
	logger   *zap.Logger
}

// NewCountryClient creates a CountryClient. statsURL is the statistics API
// endpoint, pageURL the root of the HTML listing used as fallback.
func NewCountryClient(client *Client, statsURL, pageURL string, logger *zap.Logger) *CountryClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CountryClient{
		client:   client,
		statsURL: statsURL,
		pageURL:  strings.TrimRight(pageURL, "/"),
		logger:   logger,
	}
}

// Enumerate returns the unique ASNs for code in first-seen order. Codes
// that are not exactly two characters yield nil without any lookup. The
// statistics API is tried first; the listing page is scraped only when the
// API yields nothing.
func (c *CountryClient) Enumerate(ctx context.Context, code string) []domain.ASN {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return nil
	}

	if asns := c.fromStats(ctx, code); len(asns) > 0 {
		return asns
	}
	c.logger.Debug("country stats empty, scraping listing page", zap.String("country", code))
	return c.fromPage(ctx, code)
}

// fromStats queries the statistics API. Two response shapes exist in the
// wild: ASNs nested per country under data.countries, or a flat
// data.asns.routed list. Values appear as bare integers, digit strings,
// "AS"-prefixed strings, or objects carrying an asn field.
func (c *CountryClient) fromStats(ctx context.Context, code string) []domain.ASN {
	endpoint := fmt.Sprintf("%s?resource=%s&lod=1",
		c.statsURL, url.QueryEscape(strings.ToUpper(code)))
	body := c.client.FetchBody(ctx, endpoint)
	if body == nil {
		return nil
	}

	doc := gjson.ParseBytes(body)
	var out []domain.ASN
	seen := make(map[domain.ASN]bool)

	if countries := doc.Get("data.countries"); countries.IsArray() {
		for _, entry := range countries.Array() {
			if !countryMatches(entry, code) {
				continue
			}
			for _, v := range entry.Get("routed").Array() {
				out = appendASN(out, seen, v)
			}
			for _, v := range entry.Get("asns").Array() {
				out = appendASN(out, seen, v)
			}
		}
	}
	for _, v := range doc.Get("data.asns.routed").Array() {
		out = appendASN(out, seen, v)
	}

	return out
}

// fromPage scrapes the fallback HTML listing for anchor-embedded ASNs.
func (c *CountryClient) fromPage(ctx context.Context, code string) []domain.ASN {
	body := c.client.FetchText(ctx, fmt.Sprintf("%s/%s", c.pageURL, strings.ToUpper(code)))
	if body == "" {
		return nil
	}

	var out []domain.ASN
	seen := make(map[domain.ASN]bool)
	for _, m := range countryHrefPattern.FindAllStringSubmatch(body, -1) {
		asn := domain.ASN(m[1])
		if seen[asn] {
			continue
		}
		seen[asn] = true
		out = append(out, asn)
	}
	return out
}

func countryMatches(entry gjson.Result, code string) bool {
	for _, key := range []string{"resource", "code"} {
		if v := entry.Get(key); v.Exists() && strings.EqualFold(v.String(), code) {
			return true
		}
	}
	return false
}

// appendASN coerces one stats value into canonical form and appends it if
// unseen. Values that do not reduce to digits are dropped.
func appendASN(out []domain.ASN, seen map[domain.ASN]bool, v gjson.Result) []domain.ASN {
	if v.IsObject() {
		v = v.Get("asn")
	}
	raw := domain.TrimASPrefix(strings.TrimSpace(v.String()))
	if !domain.IsDigits(raw) {
		return out
	}
	asn := domain.ASN(raw)
	if seen[asn] {
		return out
	}
	seen[asn] = true
	return append(out, asn)
}
