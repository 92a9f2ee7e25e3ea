package leghydrate

import "strings"

// stringsBuilder is strings.Builder plus a WriteLine convenience,
// matching the hand-built report-assembly style the teacher uses for
// data-to-text rendering rather than a templating engine.
type stringsBuilder struct {
	strings.Builder
}

func (b *stringsBuilder) WriteLine(s string) {
	b.WriteString(s)
	b.WriteString("\n")
}
