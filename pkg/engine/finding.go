package engine

// Placeholders for optional fields.
const (
	NoCVE     = "None"
	UnknownOS = "Unknown"
)

// Finding is one normalized ReportItem with a reportable severity.
type Finding struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"` // pluginName
	Host        string   `json:"host"`  // ReportHost name, IP or hostname
	CVE         string   `json:"cve"`
	Port        string   `json:"port"`
	OS          string   `json:"os"`
	PluginID    string   `json:"plugin_id"`
	Description string   `json:"description"`
}
