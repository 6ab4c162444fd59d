package shoppinglist

import (
	"bytes"
	"strconv"
)

const lineSeparator = " — "

// FormatEntry renders a single entry as "<name> (<unit>) — <total>".
func FormatEntry(e Entry) string {
	return e.Name + " (" + e.Unit + ")" + lineSeparator + strconv.FormatInt(e.Total, 10)
}

// RenderText renders one entry per line, newline separated, without a trailing newline.
// An empty result renders to a zero-length body.
func RenderText(r Result) []byte {
	if r.Empty() {
		return []byte{}
	}
	var buf bytes.Buffer
	for i, e := range r.Entries {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(FormatEntry(e))
	}
	return buf.Bytes()
}
