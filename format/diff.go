package format

import (
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var dmp = diffmatchpatch.New()

func init() {
	dmp.DiffTimeout = time.Second
}

// Edit is one change turning a source text into another. Offset is a byte
// offset in the source text.
type Edit struct {
	Offset int
	Delete string
	Insert string
}

// Diff returns the edits that turn before into after, or nil when the two
// texts are equal.
func Diff(before, after string) []Edit {
	if before == after {
		return nil
	}
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var edits []Edit
	pos := 0
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			if n := len(edits); n > 0 && edits[n-1].Offset+len(edits[n-1].Delete) == pos && edits[n-1].Insert == "" {
				edits[n-1].Insert = diff.Text
				continue
			}
			edits = append(edits, Edit{Offset: pos, Insert: diff.Text})
		case diffmatchpatch.DiffDelete:
			edits = append(edits, Edit{Offset: pos, Delete: diff.Text})
			pos += len(diff.Text)
		case diffmatchpatch.DiffEqual:
			pos += len(diff.Text)
		}
	}
	return edits
}

// Patch renders the difference between before and after in the
// unidiff-like patch format of diff-match-patch. It returns the empty
// string for equal texts.
func Patch(before, after string) string {
	if before == after {
		return ""
	}
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}

// Apply applies edits produced by Diff to before.
func Apply(before string, edits []Edit) string {
	out := make([]byte, 0, len(before))
	pos := 0
	for _, e := range edits {
		out = append(out, before[pos:e.Offset]...)
		out = append(out, e.Insert...)
		pos = e.Offset + len(e.Delete)
	}
	out = append(out, before[pos:]...)
	return string(out)
}
