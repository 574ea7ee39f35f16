package domain

import "testing"

func TestTrimASPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AS65000", "65000"},
		{"as65000", "65000"},
		{"aS65000", "65000"},
		{"As65000", "65000"},
		{"65000", "65000"},
		{"AS", ""},
		{"as8.8.8.0/24", "8.8.8.0/24"},
		// The marker is stripped whether or not a number follows.
		{"asus.com", "us.com"},
		{"a", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TrimASPrefix(tt.input); got != tt.want {
			t.Errorf("TrimASPrefix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"65000", true},
		{"0", true},
		{"", false},
		{"65a00", false},
		{"AS65000", false},
		{"8.8.8.8", false},
		{"-1", false},
	}

	for _, tt := range tests {
		if got := IsDigits(tt.input); got != tt.want {
			t.Errorf("IsDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestASNPrefixed(t *testing.T) {
	if got := ASN("65000").Prefixed(); got != "AS65000" {
		t.Errorf("Prefixed() = %q, want %q", got, "AS65000")
	}
}

func TestASNValid(t *testing.T) {
	tests := []struct {
		asn  ASN
		want bool
	}{
		{"65000", true},
		{"", false},
		{"AS65000", false},
	}

	for _, tt := range tests {
		if got := tt.asn.Valid(); got != tt.want {
			t.Errorf("ASN(%q).Valid() = %v, want %v", tt.asn, got, tt.want)
		}
	}
}
