package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"spooffinder/internal/adapter"
	"spooffinder/internal/codec"
	"spooffinder/internal/config"
	"spooffinder/internal/export"
	"spooffinder/internal/loader"
	"spooffinder/internal/report"
	"spooffinder/internal/service"
)

type options struct {
	target      string
	file        string
	country     string
	limit       int
	concurrency int
	output      string
	configPath  string
	asJSON      bool
	asYAML      bool
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "spooffinder [token...]",
		Short: "Look up spoofability, rank, and contact data for networks",
		Long: `Resolve ASNs, IP addresses, CIDR blocks, IP ranges, or domain names to
autonomous systems and enrich each one with spoofability test results,
global rank, registry contacts, and related links.

ASNs whose networks admit spoofed traffic are additionally written to a
tab-separated export file. With no target, file, or country given, a
single target is read interactively.`,
		Example: `  # Single targets
  spooffinder AS15169
  spooffinder -t 8.8.8.0/24

  # Batch from a file, five at a time
  spooffinder -f targets.txt -n 5

  # Every ASN registered in a country, first 50 only
  spooffinder -c ru -l 50

  # Machine-readable output
  spooffinder -t example.com --json`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.target, "target", "t", "", "target ASN, IP, CIDR, range, or domain")
	flags.StringVarP(&opts.file, "file", "f", "", "file with one target per line")
	flags.StringVarP(&opts.country, "country", "c", "", "two-letter country code to enumerate and filter by")
	flags.IntVarP(&opts.limit, "limit", "l", 0, "max ASNs to process (0 uses the config value)")
	flags.IntVarP(&opts.concurrency, "concurrency", "n", 0, "concurrent enrichments (0 uses the config value)")
	flags.StringVarP(&opts.output, "output", "o", "", "export file for spoofable ASNs (overrides config)")
	flags.BoolVar(&opts.asJSON, "json", false, "write results to stdout as JSON")
	flags.BoolVar(&opts.asYAML, "yaml", false, "write results to stdout as YAML")
	flags.StringVar(&opts.configPath, "config", "", "config file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("target", "file", "country")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	logger := newLogger(opts.verbose)
	defer func() { _ = logger.Sync() }()

	cfg, cfgPath, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("config loaded", zap.String("path", cfgPath))
	}

	tokens := append([]string(nil), args...)
	if opts.target != "" {
		tokens = append(tokens, opts.target)
	}
	if opts.file != "" {
		fromFile, err := loader.ReadTargets(opts.file)
		if err != nil {
			return err
		}
		tokens = append(tokens, fromFile...)
	}
	if len(tokens) == 0 && opts.country == "" {
		token, err := promptToken(cmd)
		if err != nil {
			return err
		}
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	httpClient := adapter.NewClient(adapter.ClientConfig{
		Timeout:   cfg.HTTP.Timeout.Duration(),
		UserAgent: cfg.HTTP.UserAgent,
		Logger:    logger,
	})

	var lookup service.ASNLookup
	switch cfg.Resolver.Backend {
	case config.BackendCymru:
		lookup = adapter.NewCymruClient(adapter.CymruConfig{
			Server:  cfg.Resolver.DNSServer,
			Timeout: cfg.HTTP.Timeout.Duration(),
			Logger:  logger,
		})
	default:
		lookup = adapter.NewGeoIPClient(httpClient, cfg.Resolver.GeoIPURL)
	}

	var backends []service.SearchBackend
	for _, name := range cfg.Search.Backends {
		switch name {
		case config.SearchDuckDuckGo:
			backends = append(backends, adapter.NewDuckDuckGo(httpClient))
		case config.SearchMojeek:
			backends = append(backends, adapter.NewMojeek(httpClient))
		}
	}

	engine := service.NewEngine(service.EngineConfig{
		Spoof:       adapter.NewSpooferClient(httpClient, cfg.Sources.SpooferURL),
		Rank:        adapter.NewASRankClient(httpClient, cfg.Sources.ASRankURL),
		Contacts:    adapter.NewRDAPClient(httpClient, cfg.Sources.RDAPURL),
		Backends:    backends,
		SearchPages: cfg.Search.Pages,
		Logger:      logger,
	})

	exportPath := cfg.Export.Path
	if opts.output != "" {
		exportPath = opts.output
	}
	writer := export.NewWriter(export.Config{
		Path:             exportPath,
		ASRankTemplate:   cfg.Links.ASRankTemplate,
		RegistryTemplate: cfg.Links.RegistryTemplate,
	})
	defer writer.Close()

	machineOutput := opts.asJSON || opts.asYAML
	var observer service.BatchObserver
	if machineOutput {
		observer = service.NopObserver{}
	} else {
		observer = report.NewConsole(report.Config{
			Out:        cmd.OutOrStdout(),
			Colors:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
			ExportPath: exportPath,
		})
	}

	orch := service.NewOrchestrator(service.OrchestratorConfig{
		Resolver: service.NewResolver(lookup, logger),
		Engine:   engine,
		Country:  adapter.NewCountryClient(httpClient, cfg.Sources.CountryStatsURL, cfg.Sources.CountryPageURL, logger),
		Exporter: writer,
		Observer: observer,
		Logger:   logger,
	})

	concurrency := cfg.Batch.Concurrency
	if opts.concurrency > 0 {
		concurrency = opts.concurrency
	}
	limit := cfg.Batch.Limit
	if opts.limit > 0 {
		limit = opts.limit
	}

	results, stats := orch.Run(cmd.Context(), service.RunOptions{
		Tokens:      tokens,
		Country:     opts.country,
		Filter:      opts.country,
		Concurrency: concurrency,
		Limit:       limit,
	})
	logger.Debug("batch finished",
		zap.Int("total", stats.Total),
		zap.Int("enriched", stats.Enriched),
		zap.Int("exported", stats.Exported),
		zap.Duration("took", stats.Duration))

	if machineOutput {
		var enc codec.Encoder = codec.NewJSONEncoder()
		if opts.asYAML {
			enc = codec.NewYAMLEncoder()
		}
		if err := enc.Encode(results, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	return nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// promptToken reads one target interactively, matching the no-argument
// flow. EOF with nothing typed means nothing to do.
func promptToken(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter ASN, IP, CIDR: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// newLogger builds a console logger on stderr so stdout stays clean for
// results.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
