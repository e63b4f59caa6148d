package diag

// Severity orders diagnostics from informational to fatal for the session.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError makes the command fail after everything is reported.
	SevError
)

// заглавные для pretty/json/снимка, строчные для короткого формата
var severityNames = [...]struct{ upper, lower string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the upper-case name used in headers, JSON and snapshots.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case name of the one-line format.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return "unknown"
}
