package docview

// NonAudioTreatment selects how strokes without an audio link are
// rendered while audio playback marking is active.
type NonAudioTreatment uint8

const (
	NonAudioNormal NonAudioTreatment = iota
	// NonAudioFaded dims strokes without an audio link, so the
	// audio-linked ones stand out during playback.
	NonAudioFaded
)

// EditionTreatment selects whether the stroke currently being drawn
// interactively (not yet committed to its layer) is rendered.
type EditionTreatment uint8

const (
	ShowEditingStroke EditionTreatment = iota
	HideEditingStroke
)

// ColorMode tags the color rendering of a pass. Only ColorNormal
// exists for now; the type keeps the call contract stable should
// export or highlight modes be added.
type ColorMode uint8

const (
	ColorNormal ColorMode = iota
)

// Context bundles the drawing target and the rendering modes of one
// compositing pass. It is built once per pass and shared unmodified
// by every layer and stroke renderer of that pass.
type Context struct {
	DC Surface

	NonAudio NonAudioTreatment
	Edition  EditionTreatment
	Color    ColorMode
}
