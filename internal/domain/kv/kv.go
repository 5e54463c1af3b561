// Package kv builds human-readable "name = value" lists for diagnostics.
package kv

import "fmt"

// Separators used when rendering entries.
const (
	entrySeparator = ", "
	pairSeparator  = " = "
)

// Builder accumulates "name = value" entries. It is an immutable value:
// And returns a new Builder and never modifies the receiver.
type Builder struct {
	content string
}

// New starts a builder holding a single entry.
func New(name string, value any) Builder {
	return Builder{content: entry(name, value)}
}

// And returns a new builder with name = value appended.
func (b Builder) And(name string, value any) Builder {
	if b.content == "" {
		return New(name, value)
	}
	return Builder{content: b.content + entrySeparator + entry(name, value)}
}

// Render returns the accumulated entries.
func (b Builder) Render() string {
	return b.content
}

// String implements fmt.Stringer.
func (b Builder) String() string {
	return b.Render()
}

func entry(name string, value any) string {
	return name + pairSeparator + fmt.Sprint(value)
}
