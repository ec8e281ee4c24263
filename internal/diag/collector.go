package diag

// Collector accumulates diagnostics across a single compile. Passes never
// return user-facing errors; they append to a Collector and return a
// sentinel (nil, unknown, zero value) so sibling diagnostics for the same
// module can still be collected (§7, propagation policy).
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Errorf appends an Error-severity diagnostic.
func (c *Collector) Errorf(code Code, pos Position, format string, args ...any) {
	c.Add(Diagnostic{Code: code, Severity: Error, Message: sprintf(format, args...), Pos: pos})
}

// Warnf appends a Warning-severity diagnostic.
func (c *Collector) Warnf(code Code, pos Position, format string, args ...any) {
	c.Add(Diagnostic{Code: code, Severity: Warning, Message: sprintf(format, args...), Pos: pos})
}

// All returns every diagnostic collected so far, in insertion order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// HasErrors reports whether any collected diagnostic has Error severity.
// Per the soundness-gate invariant (§8.1), this must be checked before the
// emitter runs.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Merge appends another Collector's diagnostics onto this one.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.diagnostics = append(c.diagnostics, other.diagnostics...)
}
