// Package diag defines the diagnostic model shared by all logtag phases.
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the tag deriver, the generator and the rewriting driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag performs no formatting, IO or CLI integration. Rendering lives
// in internal/diagfmt; orchestration lives in internal/driver and the CLI.
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Unit – qualified name of the program unit the finding is attributed to.
//   - Notes – optional secondary messages for additional context.
//
// Phases should use a diag.Reporter to decouple emission from storage, either
// directly via Reporter.Report(...) or through a ReportBuilder constructed by
// ReportError/ReportWarning/ReportInfo. diag.BagReporter aggregates
// diagnostics into a Bag, which supports sorting, deduplication and merging.
//
// Keep the data model deterministic: any new fields should avoid side effects
// so the CLI and future tooling can safely serialise diagnostics.
package diag
