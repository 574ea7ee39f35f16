package adapter

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginQuery(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"192.0.2.1", "1.2.0.192.origin.asn.cymru.com."},
		{"8.8.8.8", "8.8.8.8.origin.asn.cymru.com."},
		{"203.0.113.77", "77.113.0.203.origin.asn.cymru.com."},
	}

	for _, tt := range tests {
		addr := netip.MustParseAddr(tt.addr)
		assert.Equal(t, tt.want, originQuery(addr))
	}
}

func TestParseOriginTXT(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single origin", "15169 | 8.8.8.0/24 | US | arin | 1992-12-01", "15169"},
		{"multi-homed prefix", "64496 64497 | 192.0.2.0/24 | US | arin | 2000-01-01", "64496"},
		{"no separators", "15169", "15169"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOriginTXT(tt.input))
		})
	}
}

func TestNewCymruClientDefaults(t *testing.T) {
	c := NewCymruClient(CymruConfig{})

	// Either resolv.conf or the public fallback, but never empty.
	assert.NotEmpty(t, c.server)
	assert.NotNil(t, c.dnsClient)
}

func TestCymruConfiguredServer(t *testing.T) {
	c := NewCymruClient(CymruConfig{Server: "127.0.0.53:5353"})
	assert.Equal(t, "127.0.0.53:5353", c.server)
}
