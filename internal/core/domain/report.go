package domain

import "strings"

// StatusReport holds the displayable failures of the current run, in job order.
type StatusReport struct {
	Lines []string
}

// Add appends a failure line.
func (r *StatusReport) Add(line string) {
	r.Lines = append(r.Lines, line)
}

// Empty reports whether the run had no surfaced failure.
func (r StatusReport) Empty() bool {
	return len(r.Lines) == 0
}

// Body renders the report as a wiki list. An empty report renders as "".
func (r StatusReport) Body() string {
	var b strings.Builder
	for _, line := range r.Lines {
		b.WriteString("* ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
