// Package report renders batch progress for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"

	"spooffinder/internal/domain"
	"spooffinder/internal/service"
)

// timeLayout renders session timestamps for display.
const timeLayout = "Jan 02 2006 03:04 PM"

// Console prints colored, emoji-tagged progress lines. It implements
// service.BatchObserver; a single mutex keeps each result's block of
// lines contiguous when workers finish close together.
type Console struct {
	mu         sync.Mutex
	out        io.Writer
	au         aurora.Aurora
	exportPath string
}

var _ service.BatchObserver = (*Console)(nil)

// Config wires a Console.
type Config struct {
	// Out defaults to os.Stdout.
	Out io.Writer
	// Colors enables ANSI colors. Leave off when the output is not a
	// terminal.
	Colors bool
	// ExportPath is named in the batch summary when rows were exported.
	ExportPath string
}

// NewConsole builds a Console reporter.
func NewConsole(cfg Config) *Console {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:        out,
		au:         aurora.NewAurora(cfg.Colors),
		exportPath: cfg.ExportPath,
	}
}

func (c *Console) BatchStarted(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case total == 0:
		fmt.Fprintln(c.out, "Nothing to process.")
	case total > 1:
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("🚀 Enriching %d ASNs...", total))))
	}
}

func (c *Console) TokenInvalid(_ string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s\n", c.au.Red(fmt.Sprintf("Invalid CIDR/Range: %v", err)))
}

func (c *Console) TokenUnresolved(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s\n", c.au.Red(fmt.Sprintf("No ASN info found for %s.", token)))
}

func (c *Console) ASNStarted(asn domain.ASN) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("🔍 Fetching data for ASN: %s...", asn.Prefixed()))))
}

func (c *Console) ASNEnriched(res *domain.EnrichmentResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spoof := &res.Spoof
	fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Green(fmt.Sprintf("🌍 ASN Name: %s", res.Rank.Name))))
	if spoof.ASN6 != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Blue(fmt.Sprintf("🔢 ASN6 Number: AS%s", spoof.ASN6))))
	}
	if spoof.ASN4 != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Blue(fmt.Sprintf("🔢 ASN Number: AS%s", spoof.ASN4))))
	}
	if res.Contact.Site != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Yellow(fmt.Sprintf("🌐 Site: %s", res.Contact.Site))))
	}
	fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Magenta(fmt.Sprintf("🏆 ASN Rank: %s", rankText(res.Rank.Rank)))))

	// IPv6 capabilities are only shown when IPv4 shows none at all.
	spoofLine := "🛡️ " + capabilityLine(spoof)
	if spoof.Spoofable() {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Yellow(spoofLine)))
	} else {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Red(spoofLine)))
	}

	fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("🌍 Country: %s", countryText(spoof.Country)))))
	if spoof.ClientV4 != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("🌐 Client IPv4: %s", spoof.ClientV4))))
	}
	if spoof.ClientV6 != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("🌌 Client IPv6: %s", spoof.ClientV6))))
	}
	fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("⏱️ Last Checked: %s", lastCheckedText(spoof.Timestamp)))))
	if res.Contact.Email != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("📧 Contact Email: %s", res.Contact.Email))))
	}
	if res.Contact.Phone != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Cyan(fmt.Sprintf("📞 Contact Phone: %s", res.Contact.Phone))))
	}
	if len(res.Links) > 0 {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Green("🔗 Related Links:")))
		for _, link := range res.Links {
			fmt.Fprintf(c.out, "%s\n", c.au.Yellow("- "+link))
		}
	}
}

func (c *Console) ASNNoData(asn domain.ASN) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Red(fmt.Sprintf("❌ No data found for ASN: %s", asn))))
}

func (c *Console) ASNFiltered(asn domain.ASN) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s\n", c.au.Yellow(fmt.Sprintf("🚫 %s dropped by country filter", asn.Prefixed())))
}

func (c *Console) BatchFinished(stats service.BatchStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stats.Total > 1 {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Green(fmt.Sprintf(
			"✅ Done: %d enriched, %d without data, %d filtered in %s",
			stats.Enriched, stats.NoData, stats.Filtered, stats.Duration.Round(time.Millisecond)))))
	}
	if stats.Exported > 0 && c.exportPath != "" {
		fmt.Fprintf(c.out, "%s\n", c.au.Bold(c.au.Green(fmt.Sprintf(
			"💾 %d spoofable ASN(s) written to %s", stats.Exported, c.exportPath))))
	}
}

// capabilityLine mirrors the per-version display rule: an IPv4 line when
// any IPv4 flag is set, otherwise an IPv6 line when any IPv6 flag is
// set, otherwise a flat no.
func capabilityLine(rec *domain.SpoofRecord) string {
	switch {
	case rec.LocalV4 || rec.InternetV4:
		return "Spoofable IPv4: " + strings.Join(scopeLabels(rec.LocalV4, rec.InternetV4), ", ")
	case rec.LocalV6 || rec.InternetV6:
		return "Spoofable IPv6: " + strings.Join(scopeLabels(rec.LocalV6, rec.InternetV6), ", ")
	default:
		return "Spoofable: No"
	}
}

func scopeLabels(local, internet bool) []string {
	var labels []string
	if local {
		labels = append(labels, "Local")
	}
	if internet {
		labels = append(labels, "Internet")
	}
	return labels
}

func rankText(rank *int64) string {
	if rank == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *rank)
}

func countryText(country string) string {
	if country == "" {
		return "N/A"
	}
	return strings.ToUpper(country)
}

func lastCheckedText(ts *time.Time) string {
	if ts == nil {
		return "N/A"
	}
	return fmt.Sprintf("%s (%s)", ts.Format(timeLayout), humanize.Time(*ts))
}
