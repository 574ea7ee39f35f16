package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"spooffinder/internal/domain"
)

// GeoIPClient resolves IP addresses and domain names to ASNs through an
// ip-geolocation HTTP service speaking the ipapi.co wire format.
type GeoIPClient struct {
	client  *Client
	baseURL string
}

// NewGeoIPClient creates a GeoIPClient rooted at baseURL.
func NewGeoIPClient(client *Client, baseURL string) *GeoIPClient {
	return &GeoIPClient{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// LookupASN returns the canonical ASN reported for target (an IP address or
// a domain name), or "" when the service has no answer for it.
func (g *GeoIPClient) LookupASN(ctx context.Context, target string) string {
	var payload struct {
		ASN string `json:"asn"`
	}

	endpoint := fmt.Sprintf("%s/%s/json/", g.baseURL, url.PathEscape(target))
	if !g.client.FetchJSON(ctx, endpoint, &payload) {
		return ""
	}

	// The service reports "AS15169"; canonical form drops the marker. Error
	// payloads simply lack the field and fall through as absence.
	return domain.TrimASPrefix(payload.ASN)
}
