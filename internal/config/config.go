// Package config provides configuration management for spooffinder.
//
// Everything has a working default, so a config file is optional: a missing
// file yields the built-in defaults, and a partial file is filled in field by
// field. A present-but-broken file is a hard error; silently running with
// half of a user's intended settings is worse than refusing to start.
//
// Config file locations (priority order):
//  1. $SPOOFFINDER_CONFIG
//  2. ./spooffinder.yaml
//  3. $XDG_CONFIG_HOME/spooffinder/config.yaml
//  4. ~/.config/spooffinder/config.yaml
//  5. /etc/spooffinder/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		HTTP: HTTPConfig{
			Timeout:   Duration(10 * time.Second),
			UserAgent: DefaultUserAgent,
		},
		Resolver: ResolverConfig{
			Backend:  BackendGeoIP,
			GeoIPURL: "https://ipapi.co",
		},
		Sources: SourcesConfig{
			SpooferURL:      "https://api.spoofer.caida.org",
			ASRankURL:       "https://api.asrank.caida.org",
			RDAPURL:         "https://rdap.arin.net",
			CountryStatsURL: "https://stat.ripe.net/data/country-asns/data.json",
			CountryPageURL:  "https://bgp.he.net/country",
		},
		Search: SearchConfig{
			Backends: []string{SearchDuckDuckGo, SearchMojeek},
			Pages:    2,
		},
		Batch: BatchConfig{
			Concurrency: 5,
		},
		Export: ExportConfig{
			Path: "spoofable_asns.txt",
		},
		Links: LinksConfig{
			ASRankTemplate:   "https://asrank.caida.org/asns/%s",
			RegistryTemplate: "https://bgp.he.net/AS%s",
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = def.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = def.HTTP.UserAgent
	}
	if c.Resolver.Backend == "" {
		c.Resolver.Backend = def.Resolver.Backend
	}
	if c.Resolver.GeoIPURL == "" {
		c.Resolver.GeoIPURL = def.Resolver.GeoIPURL
	}
	if c.Sources.SpooferURL == "" {
		c.Sources.SpooferURL = def.Sources.SpooferURL
	}
	if c.Sources.ASRankURL == "" {
		c.Sources.ASRankURL = def.Sources.ASRankURL
	}
	if c.Sources.RDAPURL == "" {
		c.Sources.RDAPURL = def.Sources.RDAPURL
	}
	if c.Sources.CountryStatsURL == "" {
		c.Sources.CountryStatsURL = def.Sources.CountryStatsURL
	}
	if c.Sources.CountryPageURL == "" {
		c.Sources.CountryPageURL = def.Sources.CountryPageURL
	}
	if len(c.Search.Backends) == 0 {
		c.Search.Backends = def.Search.Backends
	}
	if c.Search.Pages <= 0 {
		c.Search.Pages = def.Search.Pages
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = def.Batch.Concurrency
	}
	if c.Export.Path == "" {
		c.Export.Path = def.Export.Path
	}
	if c.Links.ASRankTemplate == "" {
		c.Links.ASRankTemplate = def.Links.ASRankTemplate
	}
	if c.Links.RegistryTemplate == "" {
		c.Links.RegistryTemplate = def.Links.RegistryTemplate
	}
}

// Validate rejects values that would only fail later, mid-batch
func (c *Config) Validate() error {
	switch c.Resolver.Backend {
	case BackendGeoIP, BackendCymru:
	default:
		return fmt.Errorf("unknown resolver backend %q (want %q or %q)",
			c.Resolver.Backend, BackendGeoIP, BackendCymru)
	}

	for _, name := range c.Search.Backends {
		switch name {
		case SearchDuckDuckGo, SearchMojeek:
		default:
			return fmt.Errorf("unknown search backend %q", name)
		}
	}

	if c.Batch.Limit < 0 {
		return fmt.Errorf("batch limit must not be negative, got %d", c.Batch.Limit)
	}

	return nil
}
