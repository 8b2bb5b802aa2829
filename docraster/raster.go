// Implements a raster backend for page compositing,
// by wrapping rasterx.
package docraster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/inkroll/docview"
	"github.com/inkroll/docview/docmodel"
)

var _ docview.Surface = (*Surface)(nil) // assert interface conformance

// Surface rasterizes page content onto an image.RGBA.
// Page units are mapped to pixels through a fixed zoom factor.
//
// Line width must be set before the path it applies to is built.
type Surface struct {
	img    *image.RGBA
	filler *rasterx.Filler // separated instances to avoid shared state
	dasher *rasterx.Dasher
	zoom   float64

	color   color.Color
	started bool // an open subpath was begun with MoveTo
}

// New returns a surface rasterizing onto a fresh RGBA image of the
// given pixel size, one pixel per page unit.
func New(width, height int) *Surface {
	return NewZoomed(width, height, 1)
}

// NewZoomed returns a surface of the given pixel size which maps
// page units to pixels scaled by zoom.
func NewZoomed(width, height int, zoom float64) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	s := &Surface{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
		zoom:   zoom,
		color:  color.NRGBA{A: 0xff},
	}
	s.SetLineWidth(1)
	return s
}

// Image exposes the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) fixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(x * s.zoom * 64),
		Y: fixed.Int26_6(y * s.zoom * 64),
	}
}

func (s *Surface) SetColor(c color.Color) { s.color = c }

func (s *Surface) SetLineWidth(w float64) {
	s.dasher.SetStroke(
		fixed.Int26_6(w*s.zoom*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round,
		nil, 0,
	)
}

// stop closes out an open subpath begun with MoveTo.
func (s *Surface) stop() {
	if s.started {
		s.filler.Stop(false)
		s.dasher.Stop(false)
		s.started = false
	}
}

func (s *Surface) MoveTo(x, y float64) {
	s.stop()
	p := s.fixed(x, y)
	s.filler.Start(p)
	s.dasher.Start(p)
	s.started = true
}

func (s *Surface) LineTo(x, y float64) {
	p := s.fixed(x, y)
	s.filler.Line(p)
	s.dasher.Line(p)
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.stop()
	z := s.zoom
	rasterx.AddRect(x*z, y*z, (x+w)*z, (y+h)*z, 0, s.filler)
	rasterx.AddRect(x*z, y*z, (x+w)*z, (y+h)*z, 0, s.dasher)
}

func (s *Surface) Circle(cx, cy, r float64) {
	s.stop()
	z := s.zoom
	rasterx.AddCircle(cx*z, cy*z, r*z, s.filler)
	rasterx.AddCircle(cx*z, cy*z, r*z, s.dasher)
}

func (s *Surface) Stroke() {
	s.stop()
	s.dasher.Scanner.SetColor(s.color)
	s.dasher.Draw()
	s.clear()
}

func (s *Surface) Fill() {
	s.stop()
	s.filler.Scanner.SetColor(s.color)
	s.filler.Draw()
	s.clear()
}

func (s *Surface) clear() {
	s.filler.Clear()
	s.dasher.Clear()
}

// DrawImage scales img over the given page rectangle.
func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	z := s.zoom
	dst := image.Rect(
		int(math.Floor(x*z)), int(math.Floor(y*z)),
		int(math.Ceil((x+w)*z)), int(math.Ceil((y+h)*z)),
	)
	xdraw.CatmullRom.Scale(s.img, dst, img, img.Bounds(), xdraw.Over, nil)
}

// RenderPageToImage composites the page into a fresh image at the
// given zoom and returns it.
func RenderPageToImage(page *docmodel.Page, zoom float64) *image.RGBA {
	w := int(math.Ceil(page.Width * zoom))
	h := int(math.Ceil(page.Height * zoom))
	surface := NewZoomed(w, h, zoom)

	var view docview.Renderer
	view.RenderPage(page, surface, docview.DrawOptions{})
	return surface.Image()
}
