package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/kitty"
	md "github.com/nao1215/markdown"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// build flushes doc to its writer. It returns false if nothing could be written.
func build(doc *md.Markdown) bool {
	return doc.Build() == nil
}

// amount formats an amount for a table cell.
func amount(m kitty.Money) string { return m.Round().String() }

// signed formats a balance, with an explicit sign and "-" for zero.
func signed(m kitty.Money) string { return m.SignedString() }
