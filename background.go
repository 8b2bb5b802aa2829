package docview

import (
	"image"
	"image/color"
	"math"

	"github.com/inkroll/docview/docmodel"
)

// The backdrop of a page is painted by exactly one of the views
// below, chosen from the page's background descriptor. All views are
// parameterized at construction and expose a single draw operation.

type backgroundView interface {
	draw(s Surface)
}

// ruling geometry, in page units
const (
	ruledHeader  = 80.0 // first line of ruled paper
	ruledFooter  = 20.0
	ruledSpacing = 24.0
	linedMargin  = 72.0 // vertical margin line of lined paper

	graphSpacing = 14.17
	rulingWidth  = 0.5
	dotRadius    = 0.75

	staveHeader      = 80.0
	staveMargin      = 32.0
	staveLineSpacing = 6.0
	staveGroupPitch  = 60.0

	checkerSquare = 8.0
)

// newRulingView builds the procedural view for the given descriptor,
// or nil for kinds outside the procedural family.
func newRulingView(width, height float64, bg docmodel.Background) backgroundView {
	base := plainView{width: width, height: height, paper: bg.Color}
	ruling := rulingStyle{base: base, color: bg.RulingColor}
	switch bg.Kind {
	case docmodel.BgPlain:
		return base
	case docmodel.BgRuled:
		return ruledView{ruling, false}
	case docmodel.BgLined:
		return ruledView{ruling, true}
	case docmodel.BgGraph:
		return graphView{ruling}
	case docmodel.BgDotted:
		return dottedView{ruling}
	case docmodel.BgIsoDotted:
		return isoView{ruling, false}
	case docmodel.BgIsoGraph:
		return isoView{ruling, true}
	case docmodel.BgStaves:
		return stavesView{ruling}
	default:
		return nil
	}
}

// plainView fills the page with its paper color.
type plainView struct {
	width, height float64
	paper         color.NRGBA
}

func (v plainView) draw(s Surface) {
	s.SetColor(v.paper)
	s.Rect(0, 0, v.width, v.height)
	s.Fill()
}

// rulingStyle is the shared base of the ruled pattern views:
// paper fill plus a ruling color.
type rulingStyle struct {
	base  plainView
	color color.NRGBA
}

func (r rulingStyle) begin(s Surface) {
	r.base.draw(s)
	s.SetColor(r.color)
	s.SetLineWidth(rulingWidth)
}

type ruledView struct {
	rulingStyle
	withMargin bool
}

func (v ruledView) draw(s Surface) {
	v.begin(s)
	for y := ruledHeader; y <= v.base.height-ruledFooter; y += ruledSpacing {
		s.MoveTo(0, y)
		s.LineTo(v.base.width, y)
	}
	if v.withMargin {
		s.MoveTo(linedMargin, 0)
		s.LineTo(linedMargin, v.base.height)
	}
	s.Stroke()
}

type graphView struct {
	rulingStyle
}

func (v graphView) draw(s Surface) {
	v.begin(s)
	for x := graphSpacing; x < v.base.width; x += graphSpacing {
		s.MoveTo(x, 0)
		s.LineTo(x, v.base.height)
	}
	for y := graphSpacing; y < v.base.height; y += graphSpacing {
		s.MoveTo(0, y)
		s.LineTo(v.base.width, y)
	}
	s.Stroke()
}

type dottedView struct {
	rulingStyle
}

func (v dottedView) draw(s Surface) {
	v.begin(s)
	for x := graphSpacing; x < v.base.width; x += graphSpacing {
		for y := graphSpacing; y < v.base.height; y += graphSpacing {
			s.Circle(x, y, dotRadius)
		}
	}
	s.Fill()
}

// isoView draws a triangular raster, either as dots on the lattice
// or as the connecting line grid.
type isoView struct {
	rulingStyle
	lines bool
}

func (v isoView) draw(s Surface) {
	v.begin(s)
	ySpacing := graphSpacing
	xSpacing := ySpacing * math.Sqrt(3) / 2
	if v.lines {
		// vertical family plus the two 30 degree diagonal families
		for x := xSpacing; x < v.base.width; x += xSpacing {
			s.MoveTo(x, 0)
			s.LineTo(x, v.base.height)
		}
		slope := ySpacing / 2 / xSpacing
		rise := v.base.width * slope
		for b := -rise; b < v.base.height; b += ySpacing {
			s.MoveTo(0, b)
			s.LineTo(v.base.width, b+rise)
		}
		for b := ySpacing / 2; b < v.base.height+rise; b += ySpacing {
			s.MoveTo(0, b)
			s.LineTo(v.base.width, b-rise)
		}
		s.Stroke()
		return
	}
	for i, x := 1, xSpacing; x < v.base.width; i, x = i+1, x+xSpacing {
		offset := 0.0
		if i%2 == 1 {
			offset = ySpacing / 2
		}
		for y := ySpacing + offset; y < v.base.height; y += ySpacing {
			s.Circle(x, y, dotRadius)
		}
	}
	s.Fill()
}

type stavesView struct {
	rulingStyle
}

func (v stavesView) draw(s Surface) {
	v.begin(s)
	groupHeight := 4 * staveLineSpacing
	for top := staveHeader; top+groupHeight <= v.base.height-ruledFooter; top += staveGroupPitch {
		for i := 0; i < 5; i++ {
			y := top + float64(i)*staveLineSpacing
			s.MoveTo(staveMargin, y)
			s.LineTo(v.base.width-staveMargin, y)
		}
	}
	s.Stroke()
}

// imageView paints a raster image over the whole page.
type imageView struct {
	image         image.Image
	width, height float64
}

func (v imageView) draw(s Surface) {
	if v.image == nil {
		return
	}
	s.DrawImage(v.image, 0, 0, v.width, v.height)
}

// checkerboardView paints the placeholder shown when the backdrop
// layer is hidden, cueing that the background is intentionally off
// rather than blank.
type checkerboardView struct {
	width, height float64
}

var (
	checkerLight = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	checkerDark  = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

func (v checkerboardView) draw(s Surface) {
	s.SetColor(checkerLight)
	s.Rect(0, 0, v.width, v.height)
	s.Fill()
	s.SetColor(checkerDark)
	for i := 0; float64(i)*checkerSquare < v.width; i++ {
		for j := 0; float64(j)*checkerSquare < v.height; j++ {
			if (i+j)%2 == 0 {
				continue
			}
			x, y := float64(i)*checkerSquare, float64(j)*checkerSquare
			s.Rect(x, y, math.Min(checkerSquare, v.width-x), math.Min(checkerSquare, v.height-y))
		}
	}
	s.Fill()
}
