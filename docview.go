package docview

import (
	"image/color"

	"github.com/inkroll/docview/docmodel"
)

// Renderer composites document pages onto a Surface. It keeps two
// kinds of state: settings that persist across render calls (audio
// marking, the pending repaint region) and session state bound for
// the duration of exactly one RenderPage call.
//
// A Renderer must not be used from several goroutines at once, and
// RenderPage must not be reentered: the session fields are shared.
// Use one Renderer per concurrent render instead.
type Renderer struct {
	markAudioStrokes bool

	// region limits the next render pass; nil means full page.
	// Consumed by one pass and reset when it ends.
	region *Rect

	// session state, only valid between initDrawing and
	// finalizeDrawing
	dc                      Surface
	page                    *docmodel.Page
	width, height           float64
	dontRenderEditingStroke bool
}

// DrawOptions selects what a render pass leaves out.
type DrawOptions struct {
	// SuppressEditingStroke excludes the stroke currently being
	// drawn interactively.
	SuppressEditingStroke bool

	// The three hide flags suppress the backdrop only when it is of
	// the matching kind.
	HidePDFBackground    bool
	HideImageBackground  bool
	HideRulingBackground bool
}

// SetAudioMarking toggles whether strokes without an audio link are
// faded on subsequent render passes, so audio-linked strokes stand
// out. The setting persists until changed again.
func (r *Renderer) SetAudioMarking(enabled bool) { r.markAudioStrokes = enabled }

// LimitArea restricts the next RenderPage call to the given
// rectangle. Values are taken as is, without bounds checks. The
// limit applies to a single pass: it is reset when that pass ends.
func (r *Renderer) LimitArea(x, y, width, height float64) {
	r.region = &Rect{X: x, Y: y, W: width, H: height}
}

// ResetArea drops a previously configured area limit, restoring
// full page rendering.
func (r *Renderer) ResetArea() { r.region = nil }

// initDrawing binds the surface and page for one render pass.
func (r *Renderer) initDrawing(page *docmodel.Page, dc Surface, dontRenderEditingStroke bool) {
	r.dc = dc
	r.page = page
	r.width = page.Width
	r.height = page.Height
	r.dontRenderEditingStroke = dontRenderEditingStroke
}

// finalizeDrawing resets the area limit and releases the surface and
// page bindings. It always runs at the end of a pass, even when
// nothing was drawn, so no stale region survives into the next call.
func (r *Renderer) finalizeDrawing() {
	if showRepaintBounds && r.region != nil {
		r.dc.SetColor(color.NRGBA{R: 0xff, A: 0xff})
		r.dc.SetLineWidth(1)
		r.dc.Rect(r.region.X+3, r.region.Y+3, r.region.W-6, r.region.H-6)
		r.dc.Stroke()
	}

	r.region = nil
	r.page = nil
	r.dc = nil
}

// drawBackground paints the backdrop of the bound page. Exactly one
// of the variants runs: pdf backdrops are left to the external pdf
// renderer, image backdrops honor hideImage, everything else is the
// procedural family honoring hideRuling.
func (r *Renderer) drawBackground(hidePDF, hideImage, hideRuling bool) {
	bg := r.page.Background
	switch {
	case bg.Kind == docmodel.BgPDF:
		// handled by the pdf collaborator, hidden or not
	case bg.Kind == docmodel.BgImage && !hideImage:
		imageView{image: bg.Image, width: r.width, height: r.height}.draw(r.dc)
	case !hideRuling:
		// unrecognized kinds yield no view and draw nothing
		if view := newRulingView(r.width, r.height, bg); view != nil {
			view.draw(r.dc)
		}
	}
}

// RenderPage composites the given page onto dst: backdrop first
// (or the checkerboard placeholder when the backdrop layer is
// hidden), then every visible layer in stack order. A pending area
// limit set with LimitArea bounds the layer pass and is consumed.
//
// The call runs synchronously; dst and page are only borrowed and
// are released before it returns.
func (r *Renderer) RenderPage(page *docmodel.Page, dst Surface, opts DrawOptions) {
	r.initDrawing(page, dst, opts.SuppressEditingStroke)

	backgroundVisible := page.IsLayerVisible(0)

	if backgroundVisible {
		r.drawBackground(opts.HidePDFBackground, opts.HideImageBackground, opts.HideRulingBackground)
	} else {
		checkerboardView{width: r.width, height: r.height}.draw(r.dc)
	}

	edition := ShowEditingStroke
	if r.dontRenderEditingStroke {
		edition = HideEditingStroke
	}
	nonAudio := NonAudioNormal
	if r.markAudioStrokes {
		nonAudio = NonAudioFaded
	}
	ctx := Context{DC: r.dc, NonAudio: nonAudio, Edition: edition, Color: ColorNormal}

	for _, layer := range page.Layers {
		if !layer.Visible {
			continue
		}
		view := layerView{layer}
		if r.region == nil {
			view.draw(&ctx)
		} else {
			view.drawClipped(&ctx, *r.region)
		}
	}

	r.finalizeDrawing()
}
