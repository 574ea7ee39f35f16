package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"spooffinder/internal/domain"
)

// spoofTimeLayout is the exact timestamp format the spoofer API emits.
// Sessions carrying any other layout keep a nil timestamp.
const spoofTimeLayout = "2006-01-02T15:04:05+00:00"

// Sentinel values marking a spoof probe as having succeeded.
const (
	sentinelReceived = "received"
	sentinelSent     = "sent"
)

// SpooferClient fetches spoof-test session data from the CAIDA Spoofer API.
type SpooferClient struct {
	client  *Client
	baseURL string
}

// NewSpooferClient creates a SpooferClient rooted at baseURL.
func NewSpooferClient(client *Client, baseURL string) *SpooferClient {
	return &SpooferClient{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// LatestSession returns the normalized most recent session for asn, or nil
// when the API has nothing usable.
func (s *SpooferClient) LatestSession(ctx context.Context, asn domain.ASN) *domain.SpoofRecord {
	body := s.client.FetchBody(ctx, fmt.Sprintf("%s/sessions?asn=%s", s.baseURL, asn))
	if body == nil {
		return nil
	}
	return parseSessions(body, asn)
}

// parseSessions unwraps the hydra envelope if present and normalizes the
// most recent session. The API lists sessions oldest-first, so the last
// list element is the authoritative one.
func parseSessions(body []byte, asn domain.ASN) *domain.SpoofRecord {
	doc := gjson.ParseBytes(body)

	if member := doc.Get("hydra:member"); member.Exists() {
		doc = member
	}
	// Emptiness is judged on the unwrapped value before a session is
	// picked: a non-empty list that ends in an empty object still counts
	// as a session and normalizes to an all-false record.
	if sessionsAbsent(doc) {
		return nil
	}
	if doc.IsArray() {
		entries := doc.Array()
		doc = entries[len(entries)-1]
	}
	if !doc.IsObject() {
		return nil
	}

	rec := &domain.SpoofRecord{
		LocalV4:    doc.Get("routedspoof").String() == sentinelReceived,
		InternetV4: doc.Get("privatespoof").String() == sentinelSent,
		LocalV6:    doc.Get("routedspoof6").String() == sentinelReceived,
		InternetV6: doc.Get("privatespoof6").String() == sentinelSent,
		ClientV4:   doc.Get("client4").String(),
		ClientV6:   doc.Get("client6").String(),
		Country:    doc.Get("country").String(),
		ASN6:       doc.Get("asn6").String(),
	}

	if asn4 := doc.Get("asn4"); asn4.Exists() && asn4.Type != gjson.Null {
		rec.ASN4 = asn4.String()
	} else {
		// Sessions may omit their own ASN field; fall back to the ASN the
		// lookup asked about.
		rec.ASN4 = string(asn)
	}

	if ts, err := time.Parse(spoofTimeLayout, doc.Get("timestamp").String()); err == nil {
		rec.Timestamp = &ts
	}

	return rec
}

// sessionsAbsent reports whether the unwrapped sessions value carries
// nothing at all: null, an empty list, or an empty object.
func sessionsAbsent(doc gjson.Result) bool {
	switch {
	case doc.Type == gjson.Null:
		return true
	case doc.IsArray():
		return len(doc.Array()) == 0
	case doc.IsObject():
		return len(doc.Map()) == 0
	}
	return false
}
