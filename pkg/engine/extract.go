package engine

import (
	"log/slog"

	"github.com/user/nessusparse/pkg/nessus"
)

// Extract walks every host and finding of doc and sorts the reportable
// findings into severity buckets. Informational and unrated findings are
// skipped silently.
func Extract(doc *nessus.Document) *Buckets {
	buckets := NewBuckets()

	for _, host := range doc.Hosts() {
		name := host.Name()
		osName, ok := host.Tag("operating-system")
		if !ok {
			osName = UnknownOS
		}

		skipped := 0
		for _, item := range host.Items() {
			raw, _ := item.Attr("severity")
			sev, ok := ParseSeverity(raw)
			if !ok {
				skipped++
				continue
			}

			cve, ok := item.ChildText("cve")
			if !ok {
				cve = NoCVE
			}
			desc, _ := item.ChildText("description")

			buckets.Add(Finding{
				Severity:    sev,
				Title:       item.AttrOr("pluginName", ""),
				Host:        name,
				CVE:         cve,
				Port:        item.AttrOr("port", ""),
				OS:          osName,
				PluginID:    item.AttrOr("pluginID", ""),
				Description: desc,
			})
		}
		slog.Debug("processed host", "host", name, "os", osName, "skipped", skipped)
	}

	return buckets
}
