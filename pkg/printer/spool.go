package printer

import (
	"bytes"
	"strings"
)

// ESC/POS control bytes appended after the document body.
const (
	esc = 0x1b
	gs  = 0x1d
	lf  = 0x0a
)

// EncodeJob turns formatted document text into the raw byte stream a thermal
// printer consumes: the UTF-8 body with invalid sequences replaced, the
// requested feed lines, and optionally a partial paper cut.
func EncodeJob(content string, feed int, cut bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.ToValidUTF8(content, "?"))
	for i := 0; i < feed; i++ {
		buf.WriteByte(lf)
	}
	if cut {
		buf.Write([]byte{gs, 'V', 0x01}) // partial cut
	}
	return buf.Bytes()
}

// Spool encodes and sends one document to the printer in a single call.
func Spool(p Printer, content string, feed int, cut bool) error {
	return p.Print(EncodeJob(content, feed, cut))
}
