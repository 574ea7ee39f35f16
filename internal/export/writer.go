// Package export persists spoofable results as a tab-separated report.
package export

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"spooffinder/internal/domain"
)

const (
	defaultASRankTemplate   = "https://asrank.caida.org/asns/%s"
	defaultRegistryTemplate = "https://bgp.he.net/AS%s"
)

// Writer appends one row per spoofable ASN to a plain text file. The
// sink is truncated by Init at the start of every run and rows are
// written as results complete, so a crashed run still leaves everything
// processed so far on disk. Append is safe for concurrent use.
type Writer struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	asrank   string
	registry string
}

// Config wires a Writer. Empty templates fall back to the public
// ASRank and bgp.he.net URL shapes.
type Config struct {
	Path             string
	ASRankTemplate   string
	RegistryTemplate string
}

// NewWriter builds a Writer. Call Init before the first Append.
func NewWriter(cfg Config) *Writer {
	if cfg.ASRankTemplate == "" {
		cfg.ASRankTemplate = defaultASRankTemplate
	}
	if cfg.RegistryTemplate == "" {
		cfg.RegistryTemplate = defaultRegistryTemplate
	}
	return &Writer{
		path:     cfg.Path,
		asrank:   cfg.ASRankTemplate,
		registry: cfg.RegistryTemplate,
	}
}

// Init truncates the sink and opens it for the run.
func (w *Writer) Init() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	w.file = f
	return nil
}

// Append writes one row if the result shows any spoofable capability and
// reports whether a row was written. Results without capabilities are
// skipped silently.
func (w *Writer) Append(res *domain.EnrichmentResult) (bool, error) {
	if !res.Spoof.Spoofable() {
		return false, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return false, fmt.Errorf("export file %s not open", w.path)
	}
	if _, err := w.file.WriteString(w.row(res)); err != nil {
		return false, fmt.Errorf("append export row: %w", err)
	}
	return true, nil
}

// row renders the tab-separated line: prefixed ASN, display name,
// capability label, provider site, ASRank page, registry page.
func (w *Writer) row(res *domain.EnrichmentResult) string {
	name := res.Rank.Name
	if name == "" {
		name = "Unknown"
	}

	site := res.Contact.Site
	if site != "" && !strings.Contains(site, "://") {
		site = "https://" + site
	}

	fields := []string{
		res.ASN.Prefixed(),
		name,
		res.Spoof.CapabilityLabel(),
		site,
		fmt.Sprintf(w.asrank, res.ASN),
		fmt.Sprintf(w.registry, res.ASN),
	}
	return strings.Join(fields, "\t") + "\n"
}

// Path returns the sink location.
func (w *Writer) Path() string {
	return w.path
}

// Close releases the file handle. Safe to call without a prior Init.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
