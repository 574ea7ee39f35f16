package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spooffinder/internal/domain"
)

type fakeLookup struct {
	mu      sync.Mutex
	answers map[string]string
	calls   []string
}

func (f *fakeLookup) LookupASN(_ context.Context, target string) string {
	f.mu.Lock()
	f.calls = append(f.calls, target)
	f.mu.Unlock()
	return f.answers[target]
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestResolveNumericTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  domain.ASN
	}{
		{"bare number", "15169", "15169"},
		{"upper prefix", "AS15169", "15169"},
		{"lower prefix", "as15169", "15169"},
		{"surrounding space", "  AS15169  ", "15169"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{}
			r := NewResolver(lookup, nil)

			got, err := r.Resolve(context.Background(), tt.token)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, lookup.callCount(), "numeric tokens must not reach the backend")
		})
	}
}

func TestResolveNetworkNotation(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantTarget string
	}{
		{"cidr", "8.8.8.0/24", "8.8.8.0"},
		{"cidr with host bits", "8.8.8.8/24", "8.8.8.0"},
		{"range", "8.8.8.10-8.8.8.20", "8.8.8.10"},
		{"prefixed cidr", "AS8.8.8.8/24", "8.8.8.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{answers: map[string]string{tt.wantTarget: "15169"}}
			r := NewResolver(lookup, nil)

			got, err := r.Resolve(context.Background(), tt.token)

			require.NoError(t, err)
			assert.Equal(t, domain.ASN("15169"), got)
			require.Len(t, lookup.calls, 1)
			assert.Equal(t, tt.wantTarget, lookup.calls[0])
		})
	}
}

func TestResolveInvalidNotation(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"out of range octet", "300.1.2.3/24"},
		{"garbage cidr", "not/a/network"},
		{"half open range", "8.8.8.8-"},
		// A dash anywhere marks the token as range notation, so
		// hyphenated domain names fail here instead of resolving.
		{"hyphenated domain", "my-site.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{}
			r := NewResolver(lookup, nil)

			got, err := r.Resolve(context.Background(), tt.token)

			assert.Empty(t, got)
			var rangeErr *domain.InvalidRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.token, rangeErr.Token)
			assert.Zero(t, lookup.callCount())
		})
	}
}

func TestResolveDomainNames(t *testing.T) {
	lookup := &fakeLookup{answers: map[string]string{"example.com": "64496"}}
	r := NewResolver(lookup, nil)

	got, err := r.Resolve(context.Background(), "example.com")

	require.NoError(t, err)
	assert.Equal(t, domain.ASN("64496"), got)
	assert.Equal(t, []string{"example.com"}, lookup.calls)
}

func TestResolveStripsMarkerFromDomains(t *testing.T) {
	// The AS marker strip keeps no memory of what the token looked like,
	// so a domain starting with "as" loses its first two characters
	// before the backend sees it.
	lookup := &fakeLookup{answers: map[string]string{"us.com": "64496"}}
	r := NewResolver(lookup, nil)

	got, err := r.Resolve(context.Background(), "asus.com")

	require.NoError(t, err)
	assert.Equal(t, domain.ASN("64496"), got)
	assert.Equal(t, []string{"us.com"}, lookup.calls)
}

func TestResolveAbsent(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantCalls int
	}{
		{"empty token", "", 0},
		{"whitespace token", "   ", 0},
		{"backend miss", "unknown.example", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{}
			r := NewResolver(lookup, nil)

			got, err := r.Resolve(context.Background(), tt.token)

			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Equal(t, tt.wantCalls, lookup.callCount())
		})
	}
}

func TestResolveAll(t *testing.T) {
	lookup := &fakeLookup{answers: map[string]string{"192.0.2.0": "64500"}}
	r := NewResolver(lookup, nil)

	got := r.ResolveAll(context.Background(), []string{
		"AS64496",
		"300.1.2.3/24",
		"unknown.example",
		" 192.0.2.0/24 ",
	})

	require.Len(t, got, 4)
	assert.Equal(t, Resolution{Token: "AS64496", ASN: "64496"}, got[0])
	assert.Equal(t, "300.1.2.3/24", got[1].Token)
	var rangeErr *domain.InvalidRangeError
	assert.ErrorAs(t, got[1].Err, &rangeErr)
	assert.Equal(t, Resolution{Token: "unknown.example"}, got[2])
	assert.Equal(t, Resolution{Token: "192.0.2.0/24", ASN: "64500"}, got[3])
}

func TestResolveAllEmpty(t *testing.T) {
	r := NewResolver(&fakeLookup{}, nil)
	assert.Nil(t, r.ResolveAll(context.Background(), nil))
}

func TestFirstAddress(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"ipv4 cidr", "192.0.2.128/25", "192.0.2.128", false},
		{"ipv4 cidr host bits", "192.0.2.200/24", "192.0.2.0", false},
		{"ipv6 cidr", "2001:db8::1/32", "2001:db8::", false},
		{"ipv4 range", "192.0.2.5-192.0.2.9", "192.0.2.5", false},
		{"reversed range", "192.0.2.9-192.0.2.5", "", true},
		{"malformed", "192.0.2/24", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstAddress(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
