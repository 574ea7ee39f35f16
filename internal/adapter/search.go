package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DuckDuckGo scrapes the JS-free HTML search interface at
// html.duckduckgo.com. Result anchors carry the result__a class; their
// destination URL usually hides in the uddg query parameter of a redirect
// link.
type DuckDuckGo struct {
	client  *Client
	baseURL string
}

// NewDuckDuckGo creates a DuckDuckGo search backend.
func NewDuckDuckGo(client *Client) *DuckDuckGo {
	return &DuckDuckGo{client: client, baseURL: "https://html.duckduckgo.com/html/"}
}

// Name identifies the backend in config and logs.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search returns the result URLs for query across pages result pages, in
// page order with duplicates removed. Failed or empty pages contribute
// nothing.
func (d *DuckDuckGo) Search(ctx context.Context, query string, pages int) []string {
	var links []string
	for page := 0; page < pages; page++ {
		endpoint := fmt.Sprintf("%s?q=%s", d.baseURL, url.QueryEscape(query))
		if page > 0 {
			// The HTML interface pages by result offset, 30 per page.
			endpoint += fmt.Sprintf("&s=%d", page*30)
		}
		doc := parseHTML(d.client.FetchText(ctx, endpoint))
		if doc == nil {
			continue
		}
		doc.Find("a.result__a").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			if dest := duckDestination(href); dest != "" {
				links = append(links, dest)
			}
		})
	}
	return dedupLinks(links)
}

// duckDestination unwraps a result href to its destination URL. Hrefs are
// usually scheme-relative redirects carrying the destination in uddg;
// direct absolute links pass through unchanged.
func duckDestination(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	if u.IsAbs() {
		return href
	}
	return ""
}

// Mojeek scrapes www.mojeek.com search result pages.
type Mojeek struct {
	client  *Client
	baseURL string
}

// NewMojeek creates a Mojeek search backend.
func NewMojeek(client *Client) *Mojeek {
	return &Mojeek{client: client, baseURL: "https://www.mojeek.com/search"}
}

// Name identifies the backend in config and logs.
func (m *Mojeek) Name() string { return "mojeek" }

// Search returns the result URLs for query across pages result pages, in
// page order with duplicates removed. Absolute hrefs count as results;
// links back into Mojeek itself are navigation and skipped.
func (m *Mojeek) Search(ctx context.Context, query string, pages int) []string {
	var links []string
	for page := 0; page < pages; page++ {
		endpoint := fmt.Sprintf("%s?q=%s", m.baseURL, url.QueryEscape(query))
		if page > 0 {
			// Mojeek pages by a 1-based result offset, 10 per page.
			endpoint += fmt.Sprintf("&s=%d", page*10+1)
		}
		doc := parseHTML(m.client.FetchText(ctx, endpoint))
		if doc == nil {
			continue
		}
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
				return
			}
			if mojeekInternal(href) {
				return
			}
			links = append(links, href)
		})
	}
	return dedupLinks(links)
}

// mojeekInternal reports whether link points back into Mojeek itself
// (navigation, preferences, info pages) rather than at a result.
func mojeekInternal(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Hostname())
	return host == "mojeek.com" || strings.HasSuffix(host, ".mojeek.com")
}

// parseHTML parses a fetched page, or returns nil for empty or unparseable
// bodies.
func parseHTML(body string) *goquery.Document {
	if body == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	return doc
}

// dedupLinks removes duplicates preserving first-seen order.
func dedupLinks(links []string) []string {
	if len(links) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(links))
	var out []string
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
