// Implements a PDF backend for page compositing,
// by wrapping github.com/jung-kurt/gofpdf.
package docpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/inkroll/docview"
	"github.com/inkroll/docview/docmodel"
)

var _ docview.Surface = (*Surface)(nil) // assert interface conformance

// kappa approximates quarter circles with cubic beziers
const kappa = 0.5522847498

// Surface writes page content into a gofpdf document, in point
// units. The caller is responsible for adding a page of the right
// size before compositing onto it (see RenderDocumentToPDF).
type Surface struct {
	pdf        *gofpdf.Fpdf
	imageCount int
}

// NewSurface returns a surface which will write to the given `pdf`.
func NewSurface(pdf *gofpdf.Fpdf) *Surface {
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	return &Surface{pdf: pdf}
}

func (s *Surface) SetColor(c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	s.pdf.SetDrawColor(int(nc.R), int(nc.G), int(nc.B))
	s.pdf.SetFillColor(int(nc.R), int(nc.G), int(nc.B))
	s.pdf.SetAlpha(float64(nc.A)/255, "Normal")
}

func (s *Surface) SetLineWidth(w float64) { s.pdf.SetLineWidth(w) }

func (s *Surface) MoveTo(x, y float64) { s.pdf.MoveTo(x, y) }

func (s *Surface) LineTo(x, y float64) { s.pdf.LineTo(x, y) }

func (s *Surface) Rect(x, y, w, h float64) {
	s.pdf.MoveTo(x, y)
	s.pdf.LineTo(x+w, y)
	s.pdf.LineTo(x+w, y+h)
	s.pdf.LineTo(x, y+h)
	s.pdf.ClosePath()
}

func (s *Surface) Circle(cx, cy, r float64) {
	k := r * kappa
	s.pdf.MoveTo(cx+r, cy)
	s.pdf.CurveBezierCubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.pdf.CurveBezierCubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.pdf.CurveBezierCubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.pdf.CurveBezierCubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.pdf.ClosePath()
}

func (s *Surface) Stroke() { s.pdf.DrawPath("S") }

func (s *Surface) Fill() { s.pdf.DrawPath("f") }

// DrawImage embeds img (PNG encoded) and places it over the given
// rectangle.
func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.pdf.SetError(err)
		return
	}
	s.imageCount++
	name := fmt.Sprintf("docview-image-%d", s.imageCount)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)
	s.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// RenderDocumentToPDF composites every page of the document into a
// PDF written to `out`, one PDF page per document page, at the exact
// page dimensions. Pending editing strokes are left out.
func RenderDocumentToPDF(doc *docmodel.Document, out io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: 595.28, Ht: 841.89}})
	pdf.SetAutoPageBreak(false, 0)
	surface := NewSurface(pdf)

	var view docview.Renderer
	for _, page := range doc.Pages {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: page.Width, Ht: page.Height})
		view.RenderPage(page, surface, docview.DrawOptions{SuppressEditingStroke: true})
	}
	return pdf.Output(out)
}

// RenderDocumentToFile is a convenience wrapper around
// RenderDocumentToPDF writing to the named file.
func RenderDocumentToFile(doc *docmodel.Document, pdfName string) error {
	out, err := os.Create(pdfName)
	if err != nil {
		return err
	}
	if err = RenderDocumentToPDF(doc, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
