// Defines the document, page and layer model consumed
// by the compositing package docview.
// Documents are usually built by loading a file (see ReadDocument),
// but may also be assembled programmatically.
package docmodel

import (
	"image"
	"image/color"
)

// BackgroundKind selects which kind of backdrop underlies
// the content layers of a page.
type BackgroundKind uint8

const (
	// BgPlain is a solid paper color without ruling.
	BgPlain BackgroundKind = iota
	BgRuled
	BgLined
	BgGraph
	BgDotted
	BgIsoDotted
	BgIsoGraph
	BgStaves
	// BgImage uses a raster image as backdrop.
	BgImage
	// BgPDF delegates the backdrop to an external PDF renderer.
	BgPDF
)

func (k BackgroundKind) String() string {
	switch k {
	case BgPlain:
		return "plain"
	case BgRuled:
		return "ruled"
	case BgLined:
		return "lined"
	case BgGraph:
		return "graph"
	case BgDotted:
		return "dotted"
	case BgIsoDotted:
		return "isodotted"
	case BgIsoGraph:
		return "isograph"
	case BgStaves:
		return "staves"
	case BgImage:
		return "image"
	case BgPDF:
		return "pdf"
	default:
		return "<unknown BackgroundKind>"
	}
}

// Background describes the backdrop of one page.
// It is a read-only input to the background selection
// performed by docview.
type Background struct {
	Kind BackgroundKind

	// Color is the paper color, used by all procedural kinds.
	Color color.NRGBA

	// RulingColor is the color of lines and dots drawn on the paper.
	RulingColor color.NRGBA

	// Image is the decoded backdrop image, only meaningful for BgImage.
	Image image.Image

	// PDFPage is the zero-based page number inside the attached PDF
	// document, only meaningful for BgPDF. The PDF itself is rendered
	// by an external collaborator, not by docview.
	PDFPage int
}

// Point is one sample of a stroke, in page coordinates.
type Point struct {
	X, Y float64
}

// Stroke is a polyline drawn by the user.
type Stroke struct {
	Points []Point
	Width  float64
	Color  color.NRGBA

	// AudioFilename links the stroke to a recording; empty for
	// ordinary strokes.
	AudioFilename string

	// Pending marks a stroke still being drawn interactively,
	// not yet committed. Render passes may exclude it.
	Pending bool
}

// Bounds returns the axis-aligned bounding box of the stroke,
// grown by half the stroke width on each side.
// A stroke without points yields an empty rectangle.
func (s *Stroke) Bounds() (x, y, w, h float64) {
	if len(s.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	half := s.Width / 2
	return minX - half, minY - half, (maxX - minX) + s.Width, (maxY - minY) + s.Width
}

// Layer is an ordered, independently visible group of strokes
// stacked on a page. Stack position 0 is the bottommost layer.
type Layer struct {
	Name    string
	Visible bool
	Strokes []*Stroke
}

// Page is one document page: dimensions, backdrop and content layers.
// The backdrop occupies stack position 0 and carries its own
// visibility flag; content layers start at position 1.
type Page struct {
	Width, Height     float64
	Background        Background
	BackgroundVisible bool
	Layers            []*Layer
}

// NewPage returns an empty page of the given dimensions with a
// visible plain white backdrop.
func NewPage(width, height float64) *Page {
	return &Page{
		Width:  width,
		Height: height,
		Background: Background{
			Kind:        BgPlain,
			Color:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			RulingColor: color.NRGBA{R: 0x40, G: 0x64, B: 0xa4, A: 0xff},
		},
		BackgroundVisible: true,
	}
}

// IsLayerVisible reports whether the layer at the given stack
// position is visible. Position 0 is the backdrop; out of range
// positions count as visible.
func (p *Page) IsLayerVisible(i int) bool {
	if i == 0 {
		return p.BackgroundVisible
	}
	if i < 1 || i > len(p.Layers) {
		return true
	}
	return p.Layers[i-1].Visible
}

// Document is an ordered sequence of pages.
type Document struct {
	Pages []*Page
}
