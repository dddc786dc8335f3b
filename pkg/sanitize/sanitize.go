// Package sanitize strips inline citation markers from streamed assistant
// text. The assistant annotates retrieved passages with 【...】 markers that
// mean nothing to a site visitor, and a marker pair routinely arrives split
// across two or more stream chunks.
package sanitize

import "strings"

const (
	openMarker  = "【"
	closeMarker = "】"
)

// Buffer holds text withheld from output because an open marker has been
// seen but its close marker has not arrived yet. One Buffer is scoped to one
// streaming response and must not be shared across responses.
type Buffer struct {
	held string
}

// Pending reports whether the buffer is withholding an unterminated marker.
func (b *Buffer) Pending() bool {
	return b.held != ""
}

// Reset discards any withheld text. Called when a new streaming response
// begins.
func (b *Buffer) Reset() {
	b.held = ""
}

// Strip removes citation markers from chunk and returns the cleaned text.
// Text following an open marker with no close marker in sight is withheld in
// buf and re-examined on the next call. If the stream ends while buf is
// non-empty the trailing fragment is never emitted; a marker the upstream
// leaves permanently unterminated loses the text after it. Markers do not
// nest: the first open marker pairs with the first close marker after it.
func Strip(chunk string, buf *Buffer) string {
	s := buf.held + chunk
	buf.held = ""

	// The markers are multi-byte runes, so a chunk boundary can fall inside
	// one. Withhold a trailing partial encoding of either marker until the
	// next chunk resolves it.
	var tail string
	if strings.HasSuffix(s, "\xe3\x80") {
		tail = "\xe3\x80"
	} else if strings.HasSuffix(s, "\xe3") {
		tail = "\xe3"
	}
	s = s[:len(s)-len(tail)]

	var out strings.Builder
	i := 0
	for i < len(s) {
		open := strings.Index(s[i:], openMarker)
		if open == -1 {
			out.WriteString(s[i:])
			break
		}
		open += i
		out.WriteString(s[i:open])

		end := strings.Index(s[open:], closeMarker)
		if end == -1 {
			buf.held = s[open:]
			break
		}
		i = open + end + len(closeMarker)
	}
	buf.held += tail
	return out.String()
}
