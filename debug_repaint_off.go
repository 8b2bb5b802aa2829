//go:build !debugrepaint

package docview

const showRepaintBounds = false
