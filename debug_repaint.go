//go:build debugrepaint

package docview

// Diagnostic builds outline the limited repaint area in red at the
// end of each pass. Enable with: go build -tags debugrepaint
const showRepaintBounds = true
