package docmodel

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/net/html/charset"
)

// This file implements loading of the XML document format.
// Files are usually gzip-compressed; plain XML is accepted as well.

var namedColors = map[string]color.NRGBA{
	"black":      {0x00, 0x00, 0x00, 0xff},
	"blue":       {0x33, 0x33, 0xcc, 0xff},
	"red":        {0xff, 0x00, 0x00, 0xff},
	"green":      {0x00, 0x80, 0x00, 0xff},
	"gray":       {0x80, 0x80, 0x80, 0xff},
	"lightblue":  {0x00, 0xc0, 0xff, 0xff},
	"lightgreen": {0x00, 0xff, 0x00, 0xff},
	"magenta":    {0xff, 0x00, 0xff, 0xff},
	"orange":     {0xff, 0x80, 0x00, 0xff},
	"yellow":     {0xff, 0xff, 0x00, 0xff},
	"white":      {0xff, 0xff, 0xff, 0xff},
}

// ParseColor resolves a color attribute: either one of the named
// colors of the file format, or hex "#rrggbb" / "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	if c, has := namedColors[s]; has {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %s", s, err)
	}
	switch len(s) - 1 {
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
}

var backgroundStyles = map[string]BackgroundKind{
	"plain":     BgPlain,
	"ruled":     BgRuled,
	"lined":     BgLined,
	"graph":     BgGraph,
	"dotted":    BgDotted,
	"isodotted": BgIsoDotted,
	"isograph":  BgIsoGraph,
	"staves":    BgStaves,
}

// parseCursor keeps the mutable state of one parse.
type parseCursor struct {
	doc    *Document
	page   *Page
	layer  *Layer
	stroke *Stroke

	// inBackground collects the inline payload of an image backdrop
	inBackground bool
	imageData    strings.Builder

	// coordData collects the coordinate payload of the current stroke
	coordData strings.Builder

	// baseDir resolves relative backdrop file references,
	// empty when reading from a stream
	baseDir string
}

// ReadDocument reads a document from the given stream.
// Gzip-compressed and plain XML input are both accepted.
// Backdrop images referenced by file name cannot be resolved from a
// bare stream and are left nil; use ReadDocumentFile for those.
func ReadDocument(stream io.Reader) (*Document, error) {
	return readDocument(stream, "")
}

// ReadDocumentFile reads the named document file.
func ReadDocumentFile(filename string) (*Document, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return readDocument(fin, filepath.Dir(filename))
}

func readDocument(stream io.Reader, baseDir string) (*Document, error) {
	buffered := bufio.NewReader(stream)
	if magic, err := buffered.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zin, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		defer zin.Close()
		return parseXML(zin, baseDir)
	}
	return parseXML(buffered, baseDir)
}

func parseXML(stream io.Reader, baseDir string) (*Document, error) {
	cursor := &parseCursor{doc: &Document{}, baseDir: baseDir}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenRoot := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenRoot {
					return nil, errors.New("invalid document: empty input")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenRoot = true
			if err = cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err = cursor.readEndElement(se); err != nil {
				return nil, err
			}
		case xml.CharData:
			cursor.readCharData(se)
		}
	}
	if len(cursor.doc.Pages) == 0 {
		return nil, errors.New("invalid document: no pages")
	}
	return cursor.doc, nil
}

func attrMap(se xml.StartElement) map[string]string {
	out := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		out[a.Name.Local] = a.Value
	}
	return out
}

func (c *parseCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "page":
		return c.startPage(se)
	case "background":
		return c.startBackground(se)
	case "layer":
		return c.startLayer(se)
	case "stroke":
		return c.startStroke(se)
	default:
		// unknown elements (title, preview, audio, ...) are skipped
		return nil
	}
}

func (c *parseCursor) startPage(se xml.StartElement) error {
	attrs := attrMap(se)
	w, err := strconv.ParseFloat(attrs["width"], 64)
	if err != nil {
		return fmt.Errorf("invalid page width %q: %s", attrs["width"], err)
	}
	h, err := strconv.ParseFloat(attrs["height"], 64)
	if err != nil {
		return fmt.Errorf("invalid page height %q: %s", attrs["height"], err)
	}
	c.page = NewPage(w, h)
	c.doc.Pages = append(c.doc.Pages, c.page)
	return nil
}

func (c *parseCursor) startBackground(se xml.StartElement) error {
	if c.page == nil {
		return errors.New("background element outside of page")
	}
	attrs := attrMap(se)
	bg := &c.page.Background
	if v, has := attrs["visible"]; has {
		c.page.BackgroundVisible = v != "false"
	}
	if v, has := attrs["color"]; has {
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		bg.Color = col
	}
	if v, has := attrs["rulingcolor"]; has {
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		bg.RulingColor = col
	}
	switch attrs["type"] {
	case "", "solid":
		kind, has := backgroundStyles[attrs["style"]]
		if !has && attrs["style"] != "" {
			// tolerated: unknown styles degrade to plain paper
			kind = BgPlain
		}
		bg.Kind = kind
	case "pixmap":
		bg.Kind = BgImage
		if attrs["domain"] == "base64" {
			c.inBackground = true
			c.imageData.Reset()
			return nil
		}
		if name := attrs["filename"]; name != "" && c.baseDir != "" {
			img, err := loadImageFile(filepath.Join(c.baseDir, name))
			if err != nil {
				return err
			}
			bg.Image = img
		}
	case "pdf":
		bg.Kind = BgPDF
		if v, has := attrs["pageno"]; has {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid pdf page number %q: %s", v, err)
			}
			bg.PDFPage = n
		}
	default:
		return fmt.Errorf("unknown background type %q", attrs["type"])
	}
	return nil
}

func (c *parseCursor) startLayer(se xml.StartElement) error {
	if c.page == nil {
		return errors.New("layer element outside of page")
	}
	attrs := attrMap(se)
	c.layer = &Layer{Name: attrs["name"], Visible: attrs["visible"] != "false"}
	c.page.Layers = append(c.page.Layers, c.layer)
	return nil
}

func (c *parseCursor) startStroke(se xml.StartElement) error {
	if c.layer == nil {
		return errors.New("stroke element outside of layer")
	}
	attrs := attrMap(se)
	stroke := &Stroke{Width: 1, Color: namedColors["black"]}
	if v, has := attrs["width"]; has {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid stroke width %q: %s", v, err)
		}
		stroke.Width = w
	}
	if v, has := attrs["color"]; has {
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		stroke.Color = col
	}
	stroke.AudioFilename = attrs["fn"]
	c.stroke = stroke
	c.coordData.Reset()
	c.layer.Strokes = append(c.layer.Strokes, stroke)
	return nil
}

func (c *parseCursor) readEndElement(se xml.EndElement) error {
	switch se.Name.Local {
	case "page":
		c.page = nil
	case "layer":
		c.layer = nil
	case "stroke":
		if c.stroke != nil {
			points, err := parsePoints(c.coordData.String())
			if err != nil {
				return err
			}
			if len(points) == 0 {
				return errors.New("stroke without coordinates")
			}
			c.stroke.Points = points
		}
		c.stroke = nil
	case "background":
		if c.inBackground {
			c.inBackground = false
			img, err := decodeInlineImage(c.imageData.String())
			if err != nil {
				return err
			}
			c.page.Background.Image = img
		}
	}
	return nil
}

func (c *parseCursor) readCharData(data xml.CharData) {
	switch {
	case c.stroke != nil:
		c.coordData.Write(data)
	case c.inBackground:
		c.imageData.Write(data)
	}
}

// parsePoints reads the whitespace separated "x y x y ..." payload
// of a stroke element.
func parsePoints(payload string) ([]Point, error) {
	fields := strings.Fields(payload)
	if len(fields)%2 != 0 {
		return nil, errors.New("odd number of stroke coordinates")
	}
	points := make([]Point, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stroke coordinate %q: %s", fields[i], err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stroke coordinate %q: %s", fields[i+1], err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

func decodeInlineImage(payload string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("invalid inline backdrop image: %s", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid inline backdrop image: %s", err)
	}
	return img, nil
}

func loadImageFile(filename string) (image.Image, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	img, _, err := image.Decode(fin)
	return img, err
}
