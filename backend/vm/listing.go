// Package vm lowers an optimized AST to the textual stack-machine listing
// consumed by the external assembler/runtime (§4.4, §6). Grounded in the
// teacher's vm/builder.go ASMBuilder (label table, deferred text
// accumulation) crossed with the line(format, args...)-over-strings.Builder
// emission style used by the pack's GoCPU-family assemblers, since this
// generator writes a flat listing directly rather than resolving forward
// references afterward.
package vm

import (
	"fmt"
	"strings"
)

// listing accumulates emitted assembly text line by line and hands out
// monotonic internal labels.
type listing struct {
	b            strings.Builder
	labelCounter int
}

func (l *listing) line(format string, args ...any) {
	fmt.Fprintf(&l.b, format+"\n", args...)
}

func (l *listing) label(name string) {
	l.line("%s:", name)
}

// newLabel returns the next internal label in the monotonic L<n> series
// (§6: "internal labels use the form L<n> with n a monotonic counter").
func (l *listing) newLabel() string {
	l.labelCounter++
	return fmt.Sprintf("L%d", l.labelCounter)
}

func (l *listing) String() string {
	return l.b.String()
}
