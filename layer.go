package docview

import (
	"image/color"

	"github.com/inkroll/docview/docmodel"
)

// layerView renders one content layer. The layer is only read,
// never modified.
type layerView struct {
	layer *docmodel.Layer
}

// draw renders every stroke of the layer, unclipped.
func (v layerView) draw(ctx *Context) {
	for _, stroke := range v.layer.Strokes {
		strokeView{stroke}.draw(ctx)
	}
}

// drawClipped renders the layer, skipping strokes whose bounding box
// lies entirely outside the given area.
func (v layerView) drawClipped(ctx *Context, area Rect) {
	for _, stroke := range v.layer.Strokes {
		if x, y, w, h := stroke.Bounds(); !area.overlaps(x, y, w, h) {
			continue
		}
		strokeView{stroke}.draw(ctx)
	}
}

// fadeAlpha scales the opacity of non audio strokes while audio
// marking is active.
const fadeAlpha = 0.3

type strokeView struct {
	stroke *docmodel.Stroke
}

func (v strokeView) draw(ctx *Context) {
	stroke := v.stroke
	if stroke.Pending && ctx.Edition == HideEditingStroke {
		return
	}
	if len(stroke.Points) == 0 {
		return
	}

	col := stroke.Color
	if ctx.NonAudio == NonAudioFaded && stroke.AudioFilename == "" {
		col = applyAlpha(col, fadeAlpha)
	}
	s := ctx.DC
	s.SetColor(col)

	if len(stroke.Points) == 1 {
		// degenerate stroke: a single dab
		p := stroke.Points[0]
		s.Circle(p.X, p.Y, stroke.Width/2)
		s.Fill()
		return
	}

	s.SetLineWidth(stroke.Width)
	s.MoveTo(stroke.Points[0].X, stroke.Points[0].Y)
	for _, p := range stroke.Points[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()
}

func applyAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A) * opacity)
	return c
}
