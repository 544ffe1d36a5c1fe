package velac

import "fmt"

// DiagnosticSeverity classifies a Diagnostic. Warnings don't fail the
// compile; errors and fatal diagnostics do.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
	DiagnosticFatal
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	case DiagnosticFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is the structured payload delivered to a DiagnosticSink.
// File is empty when the diagnostic doesn't belong to a specific
// source file (e.g. a missing-entry-point error).
type Diagnostic struct {
	Severity DiagnosticSeverity
	File     string
	Span     Span
	Message  string
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%s: %s: %s", d.File, d.Span, d.Severity, d.Message)
}

// DiagnosticSink receives every diagnostic produced during a compile,
// called synchronously from the failing operation. There is no
// suspension point in the pipeline, so a sink can safely mutate
// caller state without synchronization.
type DiagnosticSink func(Diagnostic)

// DiagnosticCollector is a DiagnosticSink that also remembers every
// diagnostic it saw, for callers (tests, the CLI) that want to
// inspect the full list after a compile finishes.
type DiagnosticCollector struct {
	Diagnostics []Diagnostic
	warnAsError bool
}

func NewDiagnosticCollector(cfg *Config) *DiagnosticCollector {
	return &DiagnosticCollector{warnAsError: cfg.GetBool("diagnostics.warnings_as_errors")}
}

func (c *DiagnosticCollector) Sink(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Failed reports whether any collected diagnostic should fail the
// compile: any error/fatal, or any warning when configured to treat
// warnings as errors.
func (c *DiagnosticCollector) Failed() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == DiagnosticError || d.Severity == DiagnosticFatal {
			return true
		}
		if d.Severity == DiagnosticWarning && c.warnAsError {
			return true
		}
	}
	return false
}

func (c *DiagnosticCollector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == DiagnosticError || d.Severity == DiagnosticFatal {
			return true
		}
	}
	return false
}
