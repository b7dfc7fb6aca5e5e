// Package input holds CSS source text and translates byte offsets into
// human-readable positions.
package input

import (
	"fmt"
	"sort"
)

// Position is a resolved location in the source.
// Line and Column are 1-based; Column counts bytes, not runes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a half-open byte range [Start, End) into the source.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether offset lies inside r.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Input is an immutable CSS source buffer. It is safe for concurrent use.
type Input struct {
	css  string
	file string

	// lines holds the offset of the first byte of every line.
	lines []int
}

// New wraps css. file is optional and only used in positions.
func New(css string, file string) *Input {
	return &Input{
		css:   css,
		file:  file,
		lines: lineStarts(css),
	}
}

func lineStarts(css string) []int {
	lines := []int{0}
	for i := 0; i < len(css); i++ {
		switch css[i] {
		case '\n':
			lines = append(lines, i+1)
		case '\r':
			if i+1 < len(css) && css[i+1] == '\n' {
				i++
			}
			lines = append(lines, i+1)
		}
	}
	return lines
}

func (in *Input) CSS() string {
	return in.css
}

func (in *Input) File() string {
	return in.file
}

func (in *Input) Len() int {
	return len(in.css)
}

// Slice returns the source text covered by r, clamped to the buffer.
func (in *Input) Slice(r Range) string {
	start := max(0, min(r.Start, len(in.css)))
	end := max(start, min(r.End, len(in.css)))
	return in.css[start:end]
}

// Position resolves offset to a line and column.
func (in *Input) Position(offset int) Position {
	offset = max(0, min(offset, len(in.css)))
	line := sort.Search(len(in.lines), func(i int) bool {
		return in.lines[i] > offset
	}) - 1
	return Position{
		File:   in.file,
		Offset: offset,
		Line:   line + 1,
		Column: offset - in.lines[line] + 1,
	}
}

// LineCount returns the number of lines in the source.
func (in *Input) LineCount() int {
	return len(in.lines)
}
