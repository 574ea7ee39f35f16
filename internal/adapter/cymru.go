package adapter

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// cymruZone is the Team Cymru IP-to-ASN origin zone: one TXT query per IPv4
// address with its octets reversed, answers pipe-delimited.
const cymruZone = "origin.asn.cymru.com."

// CymruClient resolves IPv4 addresses to origin ASNs over DNS. Domain names
// are resolved to their first IPv4 address with the system resolver before
// the origin query is made.
type CymruClient struct {
	dnsClient *dns.Client
	server    string
	logger    *zap.Logger
}

// CymruConfig configures a CymruClient.
type CymruConfig struct {
	// Server is the host:port of the recursive resolver to query. Empty
	// selects the first server in /etc/resolv.conf, with a public resolver
	// as last resort.
	Server  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCymruClient creates a CymruClient. Zero-value config fields get
// working defaults.
func NewCymruClient(cfg CymruConfig) *CymruClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	server := cfg.Server
	if server == "" {
		server = systemResolver()
	}
	return &CymruClient{
		dnsClient: &dns.Client{Timeout: cfg.Timeout},
		server:    server,
		logger:    cfg.Logger,
	}
}

func systemResolver() string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return "9.9.9.9:53"
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port)
}

// LookupASN returns the origin ASN for target, or "" when the zone has no
// answer. The origin zone covers IPv4 only; IPv6 targets resolve to "".
func (c *CymruClient) LookupASN(ctx context.Context, target string) string {
	addr, ok := c.ipv4For(ctx, target)
	if !ok {
		return ""
	}

	msg := new(dns.Msg)
	msg.SetQuestion(originQuery(addr), dns.TypeTXT)

	in, _, err := c.dnsClient.ExchangeContext(ctx, msg, c.server)
	if err != nil {
		c.logger.Warn("origin query failed",
			zap.String("target", target), zap.String("server", c.server), zap.Error(err))
		return ""
	}

	for _, rr := range in.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		if asn := parseOriginTXT(strings.Join(txt.Txt, "")); asn != "" {
			return asn
		}
	}
	return ""
}

// ipv4For turns target into an IPv4 address, resolving domain names with
// the system resolver.
func (c *CymruClient) ipv4For(ctx context.Context, target string) (netip.Addr, bool) {
	if addr, err := netip.ParseAddr(target); err == nil {
		if addr.Is4() {
			return addr, true
		}
		if addr.Is4In6() {
			return addr.Unmap(), true
		}
		return netip.Addr{}, false
	}

	ips, err := net.DefaultResolver.LookupNetIP(ctx, "ip4", target)
	if err != nil || len(ips) == 0 {
		c.logger.Debug("no IPv4 address for target",
			zap.String("target", target), zap.Error(err))
		return netip.Addr{}, false
	}
	return ips[0].Unmap(), true
}

// originQuery builds the reversed-octet TXT name,
// e.g. 192.0.2.1 -> "1.2.0.192.origin.asn.cymru.com.".
func originQuery(addr netip.Addr) string {
	o := addr.As4()
	return fmt.Sprintf("%d.%d.%d.%d.%s", o[3], o[2], o[1], o[0], cymruZone)
}

// parseOriginTXT extracts the origin ASN from an answer like
// "15169 | 8.8.8.0/24 | US | arin | 1992-12-01". Multi-homed prefixes list
// several ASNs space-separated in the first field; the first one wins.
func parseOriginTXT(s string) string {
	fields := strings.Split(s, "|")
	asns := strings.Fields(fields[0])
	if len(asns) == 0 {
		return ""
	}
	return asns[0]
}
