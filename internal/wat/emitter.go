package wat

import "strings"

// indentWidth is the number of spaces per nesting level in formatted output.
const indentWidth = 4

// emitterLine is one output line with its nesting depth.
type emitterLine struct {
	contents    string
	indentation int
}

// Emitter accumulates S-expression text as indented lines.
//
// It is a pure accumulator with no error conditions. Indent and Unindent
// track nesting as a scoped counter; callers must balance calls. The
// counter never goes negative; Unindent below zero clamps.
//
// One Emitter belongs to exactly one Generator for one translation.
type Emitter struct {
	lines []emitterLine
}

// NewEmitter returns an Emitter holding a single empty line at depth zero.
func NewEmitter() *Emitter {
	return &Emitter{lines: []emitterLine{{}}}
}

func (e *Emitter) last() *emitterLine {
	return &e.lines[len(e.lines)-1]
}

// Add appends a fragment to the current line.
func (e *Emitter) Add(s string) {
	e.last().contents += s
}

// NewLine starts a fresh line at the current indentation. Starting a new
// line while the current one is still empty is a no-op, so balanced
// Indent/Unindent pairs never produce blank runs by accident.
func (e *Emitter) NewLine() {
	if e.last().contents != "" {
		e.lines = append(e.lines, emitterLine{indentation: e.last().indentation})
	}
}

// AddLine writes a fragment on a line of its own.
func (e *Emitter) AddLine(s string) {
	e.NewLine()
	e.Add(s)
	e.NewLine()
}

// Indent increases the nesting depth for subsequent lines.
func (e *Emitter) Indent() {
	e.NewLine()
	e.last().indentation++
}

// Unindent decreases the nesting depth for subsequent lines.
func (e *Emitter) Unindent() {
	e.NewLine()
	if e.last().indentation > 0 {
		e.last().indentation--
	}
}

// Format returns the accumulated text, each line terminated by a newline.
// Lines that received no content (the initial line, or one opened by a
// final NewLine) are dropped.
func (e *Emitter) Format() string {
	var b strings.Builder
	for _, line := range e.lines {
		if line.contents == "" {
			continue
		}
		b.WriteString(strings.Repeat(" ", line.indentation*indentWidth))
		b.WriteString(line.contents)
		b.WriteByte('\n')
	}
	return b.String()
}
