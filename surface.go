// Implements the compositing of one document page onto a drawing
// surface: backdrop selection, layer stacking and region limited
// redraws. The actual draw operations are delegated to a Surface,
// such as a rasterizer producing images (docraster) or a pdf
// writer (docpdf).
package docview

import (
	"image"
	"image/color"
)

// Surface knows how to do the actual draw operations but doesn't
// need any document knowledge. Coordinates are in page units, origin
// at the top left corner.
//
// Path operations (MoveTo, LineTo, Rect, Circle) accumulate subpaths;
// Stroke and Fill consume and clear the accumulated path.
type Surface interface {
	// SetColor sets the color used by the next Stroke or Fill
	SetColor(c color.Color)

	// SetLineWidth sets the width used by the next Stroke
	SetLineWidth(w float64)

	// MoveTo starts a new subpath at the given point
	MoveTo(x, y float64)

	// LineTo adds a line from the current point
	LineTo(x, y float64)

	// Rect adds a closed rectangle subpath
	Rect(x, y, w, h float64)

	// Circle adds a closed circle subpath
	Circle(cx, cy, r float64)

	// Stroke outlines the accumulated path and clears it
	Stroke()

	// Fill fills the accumulated path and clears it
	Fill()

	// DrawImage paints img scaled into the given rectangle
	DrawImage(img image.Image, x, y, w, h float64)
}

// Rect is an axis-aligned rectangle in page units, used to bound
// partial redraws.
type Rect struct {
	X, Y, W, H float64
}

// overlaps reports whether r and the given box share any area.
func (r Rect) overlaps(x, y, w, h float64) bool {
	return x < r.X+r.W && x+w > r.X && y < r.Y+r.H && y+h > r.Y
}
