// Package svgx manipulates SVG documents as first-class images: it reads
// intrinsic dimensions, computes resize/crop/pad transforms by rewriting the
// viewBox and width/height attributes, and caches each transformed variant
// under a content-addressed key so repeated calls never regenerate.
package svgx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/flanksource/svgx/geometry"
)

// Dimensions is the intrinsic size of a document in user units. The zero
// value is the scalable sentinel: a document that declares neither a viewBox
// nor width/height has no intrinsic size, which is a valid state, not an
// error.
type Dimensions struct {
	Width  float64
	Height float64
}

// Scalable reports whether the document has no usable intrinsic size.
func (d Dimensions) Scalable() bool {
	return d.Width <= 0 || d.Height <= 0
}

func (d Dimensions) String() string {
	if d.Scalable() {
		return "scalable"
	}
	return fmt.Sprintf("%sx%s", fmtNum(d.Width), fmtNum(d.Height))
}

// unit suffixes accepted on width/height attributes, longest first so "px"
// wins over a bare trailing "x" never matching.
var lengthUnits = []string{"px", "pt", "pc", "mm", "cm", "in", "em", "ex", "rem", "%"}

// ReadDimensions parses the intrinsic size of an SVG document. The viewBox
// wins when present: per the SVG spec it is "min-x min-y width height", so
// the third and fourth components are the size directly. Without a viewBox
// the width/height attributes are used, unit suffixes ignored. Without
// either, the scalable sentinel is returned.
func ReadDimensions(data []byte) (Dimensions, error) {
	doc, err := parse(data)
	if err != nil {
		return Dimensions{}, err
	}
	return dimensionsOf(doc.Root()), nil
}

// parse reads data into an element tree, requiring a root element.
func parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return doc, nil
}

func dimensionsOf(root *etree.Element) Dimensions {
	if vb, ok := viewBoxOf(root); ok {
		return Dimensions{Width: vb.Width, Height: vb.Height}
	}
	w, wok := parseLength(root.SelectAttrValue("width", ""))
	h, hok := parseLength(root.SelectAttrValue("height", ""))
	if wok && hok {
		return Dimensions{Width: w, Height: h}
	}
	return Dimensions{}
}

// viewBoxOf reads the root viewBox attribute. Components may be separated by
// whitespace, commas, or both.
func viewBoxOf(root *etree.Element) (geometry.Rect, bool) {
	raw := root.SelectAttrValue("viewBox", "")
	if raw == "" {
		return geometry.Rect{}, false
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return geometry.Rect{}, false
	}
	nums := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Rect{}, false
		}
		nums[i] = v
	}
	return geometry.Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, true
}

// coordinateSpace returns the rectangle transforms operate on: the viewBox if
// declared, otherwise a zero-origin frame built from width/height. The bool
// is false for scalable documents.
func coordinateSpace(root *etree.Element) (geometry.Rect, bool) {
	if vb, ok := viewBoxOf(root); ok {
		return vb, true
	}
	dims := dimensionsOf(root)
	if dims.Scalable() {
		return geometry.Rect{}, false
	}
	return geometry.Rect{Width: dims.Width, Height: dims.Height}, true
}

// parseLength reads a numeric attribute value, stripping a trailing unit
// suffix. Percentages are treated as unitless numbers: with no rendered
// context there is nothing to resolve them against.
func parseLength(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v, true
	}
	for _, unit := range lengthUnits {
		if strings.HasSuffix(value, unit) {
			trimmed := strings.TrimSpace(strings.TrimSuffix(value, unit))
			if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return v, true
			}
			return 0, false
		}
	}
	return 0, false
}

// writeLayout rewrites the root element's geometry attributes.
func writeLayout(root *etree.Element, layout geometry.Layout) {
	vb := layout.ViewBox
	root.CreateAttr("viewBox", fmt.Sprintf("%s %s %s %s",
		fmtNum(vb.X), fmtNum(vb.Y), fmtNum(vb.Width), fmtNum(vb.Height)))
	root.CreateAttr("width", fmtNum(layout.Display.Width))
	root.CreateAttr("height", fmtNum(layout.Display.Height))
}

// fmtNum renders a float the way hand-written SVG does: no exponent, no
// trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
