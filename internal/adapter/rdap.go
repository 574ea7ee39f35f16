package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"spooffinder/internal/domain"
)

// Contact extraction patterns. Registry autnum records are fetched as raw
// text and searched, not parsed: RDAP payload layouts differ per registry,
// while email addresses and phone numbers look the same everywhere.
var (
	emailPattern = regexp.MustCompile(`\w+([-+.']\w+)*@\w+([-.]\w+)*\.\w+([-.']\w+)*`)
	phonePattern = regexp.MustCompile(`[+]\d+(?:[-\s]|)[\d\-\s]+`)
)

// RDAPClient extracts best-effort contact details from registry autnum
// records.
type RDAPClient struct {
	client  *Client
	baseURL string
}

// NewRDAPClient creates an RDAPClient rooted at baseURL.
func NewRDAPClient(client *Client, baseURL string) *RDAPClient {
	return &RDAPClient{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Contacts returns whatever contact data the registry record for asn
// yields. The first match of each pattern wins independently; the site is
// the domain part of the matched email. Fields nothing matched stay empty,
// and a failed fetch yields the zero value.
func (r *RDAPClient) Contacts(ctx context.Context, asn domain.ASN) domain.ContactInfo {
	body := r.client.FetchText(ctx, fmt.Sprintf("%s/registry/autnum/%s", r.baseURL, asn))
	if body == "" {
		return domain.ContactInfo{}
	}

	var info domain.ContactInfo
	if email := emailPattern.FindString(body); email != "" {
		info.Email = email
		if at := strings.IndexByte(email, '@'); at >= 0 {
			info.Site = email[at+1:]
		}
	}
	info.Phone = phonePattern.FindString(body)
	return info
}
