package docview

import (
	"fmt"
	"image"
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/inkroll/docview/docmodel"
)

// recorder is a Surface logging every call, used to check the
// compositing sequence without rasterizing anything.
type recorder struct {
	ops []string
}

func (r *recorder) log(format string, args ...interface{}) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) SetColor(c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	r.log("color #%02x%02x%02x%02x", nc.R, nc.G, nc.B, nc.A)
}

func (r *recorder) SetLineWidth(w float64)  { r.log("linewidth %g", w) }
func (r *recorder) MoveTo(x, y float64)     { r.log("moveto %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)     { r.log("lineto %g %g", x, y) }
func (r *recorder) Rect(x, y, w, h float64) { r.log("rect %g %g %g %g", x, y, w, h) }
func (r *recorder) Circle(cx, cy, rad float64) {
	r.log("circle %g %g %g", cx, cy, rad)
}
func (r *recorder) Stroke() { r.log("stroke") }
func (r *recorder) Fill()   { r.log("fill") }
func (r *recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.log("image %g %g %g %g", x, y, w, h)
}

// countPrefix returns how many recorded calls start with the prefix.
func (r *recorder) countPrefix(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

// colors returns the sequence of recorded SetColor values.
func (r *recorder) colors() []string {
	var out []string
	for _, op := range r.ops {
		if strings.HasPrefix(op, "color ") {
			out = append(out, strings.TrimPrefix(op, "color "))
		}
	}
	return out
}

func strokeOfColor(c color.NRGBA, points ...docmodel.Point) *docmodel.Stroke {
	return &docmodel.Stroke{Points: points, Width: 2, Color: c}
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func twoPoints(x float64) []docmodel.Point {
	return []docmodel.Point{{X: x, Y: 100}, {X: x + 50, Y: 150}}
}

func TestLayerOrderAndVisibility(t *testing.T) {
	page := docmodel.NewPage(800, 600)
	page.Layers = []*docmodel.Layer{
		{Visible: true, Strokes: []*docmodel.Stroke{strokeOfColor(red, twoPoints(10)...)}},
		{Visible: false, Strokes: []*docmodel.Stroke{strokeOfColor(green, twoPoints(10)...)}},
		{Visible: true, Strokes: []*docmodel.Stroke{strokeOfColor(blue, twoPoints(10)...)}},
	}

	dst := &recorder{}
	var view Renderer
	// suppress the ruling to observe layer draws only
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})

	want := []string{"#ff0000ff", "#0000ffff"}
	if got := dst.colors(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong layer draw sequence: got %v, want %v", got, want)
	}
}

func TestEmptyLayerSequence(t *testing.T) {
	page := docmodel.NewPage(800, 600)

	dst := &recorder{}
	var view Renderer
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})

	if len(dst.ops) != 0 {
		t.Errorf("expected no draw calls on an empty page, got %v", dst.ops)
	}
}

func TestRuledPageScenario(t *testing.T) {
	// 800x600, ruled, black paper lines, background visible,
	// two visible layers, no area limit
	page := docmodel.NewPage(800, 600)
	page.Background.Kind = docmodel.BgRuled
	page.Background.RulingColor = color.NRGBA{A: 0xff} // black
	page.Layers = []*docmodel.Layer{
		{Visible: true, Strokes: []*docmodel.Stroke{strokeOfColor(red, twoPoints(10)...)}},
		{Visible: true, Strokes: []*docmodel.Stroke{strokeOfColor(blue, twoPoints(10)...)}},
	}

	dst := &recorder{}
	var view Renderer
	view.RenderPage(page, dst, DrawOptions{})

	// one ruled render: the first line spans the page width at the header
	if got := dst.countPrefix("moveto 0 80"); got != 1 {
		t.Errorf("expected exactly one header ruling line, got %d", got)
	}
	if got := dst.countPrefix("lineto 800 80"); got != 1 {
		t.Errorf("ruling lines should span the page width")
	}
	// paper fill, ruling color, then the two layer strokes in order
	want := []string{"#ffffffff", "#000000ff", "#ff0000ff", "#0000ffff"}
	if got := dst.colors(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong compositing sequence: got %v, want %v", got, want)
	}
}

func TestHiddenBackgroundUsesCheckerboard(t *testing.T) {
	page := docmodel.NewPage(800, 600)
	page.Background.Kind = docmodel.BgRuled
	page.BackgroundVisible = false
	page.Layers = []*docmodel.Layer{
		{Visible: true, Strokes: []*docmodel.Stroke{strokeOfColor(red, twoPoints(10)...)}},
		{Visible: true, Strokes: []*docmodel.Stroke{strokeOfColor(blue, twoPoints(10)...)}},
	}

	dst := &recorder{}
	var view Renderer
	view.RenderPage(page, dst, DrawOptions{})

	if got := dst.countPrefix("moveto 0 80"); got != 0 {
		t.Errorf("no ruling may be drawn while the backdrop layer is hidden")
	}
	// checkerboard: the full field plus the dark squares
	if got := dst.countPrefix("rect "); got < 2 {
		t.Errorf("expected checkerboard rectangles, got %d rect calls", got)
	}
	wantColors := []string{"#ddddddff", "#aaaaaaff", "#ff0000ff", "#0000ffff"}
	if got := dst.colors(); !reflect.DeepEqual(got, wantColors) {
		t.Errorf("wrong compositing sequence: got %v, want %v", got, wantColors)
	}
}

func TestAreaLimitAndReset(t *testing.T) {
	inside := strokeOfColor(red, docmodel.Point{X: 20, Y: 20}, docmodel.Point{X: 40, Y: 40})
	outside := strokeOfColor(blue, docmodel.Point{X: 500, Y: 500}, docmodel.Point{X: 520, Y: 520})
	page := docmodel.NewPage(800, 600)
	page.Layers = []*docmodel.Layer{
		{Visible: true, Strokes: []*docmodel.Stroke{inside, outside}},
	}

	var view Renderer
	view.LimitArea(10, 10, 50, 50)

	dst := &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})
	if got, want := dst.colors(), []string{"#ff0000ff"}; !reflect.DeepEqual(got, want) {
		t.Errorf("area limited pass drew %v, want %v", got, want)
	}

	// the limit is consumed: the next pass renders the full page
	dst = &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})
	if got, want := dst.colors(), []string{"#ff0000ff", "#0000ffff"}; !reflect.DeepEqual(got, want) {
		t.Errorf("follow-up pass drew %v, want %v", got, want)
	}
}

func TestResetArea(t *testing.T) {
	stroke := strokeOfColor(blue, docmodel.Point{X: 500, Y: 500}, docmodel.Point{X: 520, Y: 520})
	page := docmodel.NewPage(800, 600)
	page.Layers = []*docmodel.Layer{{Visible: true, Strokes: []*docmodel.Stroke{stroke}}}

	var view Renderer
	view.LimitArea(10, 10, 50, 50)
	view.ResetArea()

	dst := &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})
	if got := dst.countPrefix("color"); got != 1 {
		t.Errorf("expected an unclipped pass after ResetArea, got ops %v", dst.ops)
	}
}

func TestEditingStrokeSuppression(t *testing.T) {
	pending := strokeOfColor(red, twoPoints(10)...)
	pending.Pending = true
	committed := strokeOfColor(blue, twoPoints(10)...)
	page := docmodel.NewPage(800, 600)
	page.Layers = []*docmodel.Layer{{Visible: true, Strokes: []*docmodel.Stroke{pending, committed}}}

	var view Renderer

	dst := &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true, SuppressEditingStroke: true})
	if got, want := dst.colors(), []string{"#0000ffff"}; !reflect.DeepEqual(got, want) {
		t.Errorf("suppressed pass drew %v, want %v", got, want)
	}

	dst = &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})
	if got, want := dst.colors(), []string{"#ff0000ff", "#0000ffff"}; !reflect.DeepEqual(got, want) {
		t.Errorf("unsuppressed pass drew %v, want %v", got, want)
	}
}

func TestAudioMarkingFadesNonAudioStrokes(t *testing.T) {
	plain := strokeOfColor(color.NRGBA{A: 0xff}, twoPoints(10)...)
	linked := strokeOfColor(color.NRGBA{A: 0xff}, twoPoints(100)...)
	linked.AudioFilename = "rec.wav"
	page := docmodel.NewPage(800, 600)
	page.Layers = []*docmodel.Layer{{Visible: true, Strokes: []*docmodel.Stroke{plain, linked}}}

	var view Renderer
	view.SetAudioMarking(true)
	view.SetAudioMarking(true) // idempotent

	dst := &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})
	want := []string{"#0000004c", "#000000ff"} // faded, then full strength
	if got := dst.colors(); !reflect.DeepEqual(got, want) {
		t.Errorf("audio marking pass drew %v, want %v", got, want)
	}

	// the setting persists across passes until switched off
	view.SetAudioMarking(false)
	dst = &recorder{}
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})
	want = []string{"#000000ff", "#000000ff"}
	if got := dst.colors(); !reflect.DeepEqual(got, want) {
		t.Errorf("unmarked pass drew %v, want %v", got, want)
	}
}

func TestSinglePointStrokeIsADab(t *testing.T) {
	dab := &docmodel.Stroke{Points: []docmodel.Point{{X: 30, Y: 40}}, Width: 4, Color: red}
	page := docmodel.NewPage(800, 600)
	page.Layers = []*docmodel.Layer{{Visible: true, Strokes: []*docmodel.Stroke{dab}}}

	dst := &recorder{}
	var view Renderer
	view.RenderPage(page, dst, DrawOptions{HideRulingBackground: true})

	if got := dst.countPrefix("circle 30 40 2"); got != 1 {
		t.Errorf("expected a single dab, got ops %v", dst.ops)
	}
	if got := dst.countPrefix("fill"); got != 1 {
		t.Errorf("a dab should be filled, got ops %v", dst.ops)
	}
}
