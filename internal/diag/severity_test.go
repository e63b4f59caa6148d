package diag

import "testing"

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.upper {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.upper)
		}
		if got := tt.sev.Label(); got != tt.lower {
			t.Errorf("Severity(%d).Label() = %q, want %q", tt.sev, got, tt.lower)
		}
	}
	if !(SevInfo < SevWarning && SevWarning < SevError) {
		t.Fatal("severities must be ordered info < warning < error")
	}
}
