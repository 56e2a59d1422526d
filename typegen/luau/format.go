// Package luau renders Luau type definitions for Roblox classes.
package luau

import "strings"

// Format selects pretty or compact whitespace. It never changes semantics.
type Format struct {
	Compact bool
}

// NewLine separates top-level statements
func (f Format) NewLine() string {
	if f.Compact {
		return ";"
	}
	return "\n"
}

// OptionalNewLine is a line break that compact output drops entirely
func (f Format) OptionalNewLine() string {
	if f.Compact {
		return ""
	}
	return "\n"
}

// NextEntry terminates one field of a table type
func (f Format) NextEntry() string {
	if f.Compact {
		return ";"
	}
	return ",\n"
}

// Indent prefixes a table field
func (f Format) Indent() string {
	if f.Compact {
		return ""
	}
	return "\t"
}

// Space is an optional space around punctuation
func (f Format) Space() string {
	if f.Compact {
		return ""
	}
	return " "
}

// builder accumulates generated text using one Format
type builder struct {
	f  Format
	sb strings.Builder
}

func newBuilder(f Format) *builder {
	return &builder{f: f}
}

func (b *builder) write(parts ...string) *builder {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
	return b
}

// field writes "<indent>name:<space>typ" followed by the entry terminator
func (b *builder) field(name, typ string) *builder {
	return b.write(b.f.Indent(), name, ":", b.f.Space(), typ, b.f.NextEntry())
}

func (b *builder) String() string {
	return b.sb.String()
}
