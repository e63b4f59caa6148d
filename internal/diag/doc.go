// Package diag defines the diagnostic model shared by the lexer, the parser,
// the import analyzer and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases talk to a Reporter and never to storage. The parser builds entries
// with ReportError/ReportWarning and chains WithNote before Emit; simpler
// producers call Reporter.Report directly. BagReporter collects into a Bag,
// which is the session-wide sink owned by the compilation database.
//
// Package diag does no rendering and no IO beyond FormatShort, the
// single-line form used by tests and the CLI. Pretty output lives in
// internal/diagfmt.
package diag
