package config

import (
	"time"
)

// Resolver backend names accepted in the config file.
const (
	BackendGeoIP = "geoip"
	BackendCymru = "cymru"
)

// Search backend names accepted in the config file.
const (
	SearchDuckDuckGo = "duckduckgo"
	SearchMojeek     = "mojeek"
)

// DefaultUserAgent is presented to every upstream source. Several of them
// serve degraded or empty responses to clients that look like bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36"

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	HTTP     HTTPConfig     `yaml:"http"`
	Resolver ResolverConfig `yaml:"resolver"`
	Sources  SourcesConfig  `yaml:"sources"`
	Search   SearchConfig   `yaml:"search"`
	Batch    BatchConfig    `yaml:"batch"`
	Export   ExportConfig   `yaml:"export"`
	Links    LinksConfig    `yaml:"links"`
}

// HTTPConfig holds settings shared by every outbound HTTP request
type HTTPConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
}

// ResolverConfig selects and tunes the IP-to-ASN lookup backend
type ResolverConfig struct {
	Backend  string `yaml:"backend"` // geoip or cymru
	GeoIPURL string `yaml:"geoip_url"`
	// DNSServer is the host:port the cymru backend queries. Empty means the
	// first server from /etc/resolv.conf.
	DNSServer string `yaml:"dns_server,omitempty"`
}

// SourcesConfig holds the base URLs of the enrichment data sources
type SourcesConfig struct {
	SpooferURL      string `yaml:"spoofer_url"`
	ASRankURL       string `yaml:"asrank_url"`
	RDAPURL         string `yaml:"rdap_url"`
	CountryStatsURL string `yaml:"country_stats_url"`
	CountryPageURL  string `yaml:"country_page_url"`
}

// SearchConfig selects the link-discovery search backends
type SearchConfig struct {
	Backends []string `yaml:"backends"`
	Pages    int      `yaml:"pages"`
}

// BatchConfig bounds a batch run
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
	// Limit truncates the deduplicated ASN set; zero means unlimited.
	Limit int `yaml:"limit"`
}

// ExportConfig holds export sink settings
type ExportConfig struct {
	Path string `yaml:"path"`
}

// LinksConfig holds the URL templates written into export rows
type LinksConfig struct {
	ASRankTemplate   string `yaml:"asrank_template"`
	RegistryTemplate string `yaml:"registry_template"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
