package svgx

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceDoc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 150"><rect width="200" height="150" fill="#eee"/></svg>`

// rootAttrs parses output bytes and returns the root geometry attributes.
func rootAttrs(t *testing.T, data []byte) (viewBox, width, height string) {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.Root()
	require.NotNil(t, root)
	return root.SelectAttrValue("viewBox", ""),
		root.SelectAttrValue("width", ""),
		root.SelectAttrValue("height", "")
}

func TestApplyFit(t *testing.T) {
	out, err := Apply([]byte(sourceDoc), TransformSpec{Kind: KindFit, Width: 150, Height: 150})
	require.NoError(t, err)

	vb, w, h := rootAttrs(t, out)
	assert.Equal(t, "0 0 200 150", vb, "fit keeps the coordinate space")
	assert.Equal(t, "150", w)
	assert.Equal(t, "112.5", h)
}

func TestApplyFill(t *testing.T) {
	out, err := Apply([]byte(sourceDoc), TransformSpec{Kind: KindFill, Width: 100, Height: 100})
	require.NoError(t, err)

	vb, w, h := rootAttrs(t, out)
	assert.Equal(t, "25 0 150 150", vb)
	assert.Equal(t, "100", w)
	assert.Equal(t, "100", h)
}

func TestApplyPad(t *testing.T) {
	out, err := Apply([]byte(sourceDoc), TransformSpec{Kind: KindPad, Width: 300, Height: 150})
	require.NoError(t, err)

	vb, w, h := rootAttrs(t, out)
	assert.Equal(t, "-50 0 300 150", vb)
	assert.Equal(t, "300", w)
	assert.Equal(t, "150", h)
}

func TestApplyAttributeOnlyDocument(t *testing.T) {
	// Without a viewBox the width/height attributes define the coordinate
	// space; a crop must introduce a viewBox over it.
	input := `<svg width="200" height="150"><circle cx="100" cy="75" r="10"/></svg>`
	out, err := Apply([]byte(input), TransformSpec{Kind: KindCropWidth, Width: 100})
	require.NoError(t, err)

	vb, w, h := rootAttrs(t, out)
	assert.Equal(t, "50 0 100 150", vb)
	assert.Equal(t, "100", w)
	assert.Equal(t, "150", h)
}

func TestApplyScalableDocumentUnchanged(t *testing.T) {
	input := []byte(`<svg><rect width="5" height="5"/></svg>`)
	out, err := Apply(input, TransformSpec{Kind: KindFill, Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, input, out, "no intrinsic size means nothing to transform against")
}

func TestApplyMalformed(t *testing.T) {
	_, err := Apply([]byte("<svg><broken"), TransformSpec{Kind: KindFit, Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrParse)
}

func TestApplyUnknownKind(t *testing.T) {
	_, err := Apply([]byte(sourceDoc), TransformSpec{Kind: Kind("Sharpen"), Width: 10})
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestApplyPreservesContent(t *testing.T) {
	out, err := Apply([]byte(sourceDoc), TransformSpec{Kind: KindFill, Width: 50, Height: 50})
	require.NoError(t, err)
	assert.Contains(t, string(out), `<rect width="200" height="150" fill="#eee"/>`)
	assert.Contains(t, string(out), `xmlns="http://www.w3.org/2000/svg"`)
}

func TestSpecNames(t *testing.T) {
	tests := []struct {
		spec TransformSpec
		name string
	}{
		{TransformSpec{Kind: KindFit, Width: 150, Height: 150}, "Fit150x150"},
		{TransformSpec{Kind: KindFillMax, Width: 100, Height: 80}, "FillMax100x80"},
		{TransformSpec{Kind: KindScaleWidth, Width: 200}, "ScaleWidth200"},
		{TransformSpec{Kind: KindScaleHeight, Height: 90}, "ScaleHeight90"},
		{TransformSpec{Kind: KindCropRegion, X: 10, Y: 20, Width: 50, Height: 60}, "CropRegion10-20-50x60"},
		{TransformSpec{Kind: KindCropWidth, Width: 120}, "CropWidth120"},
		{TransformSpec{Kind: KindFocusFill, Width: 100, Height: 100, FocusX: 0.25, FocusY: 0.75}, "FocusFill100x100-0.250-0.750"},
		{TransformSpec{Kind: KindFocusFill, Width: 100, Height: 100, FocusX: 0.25, FocusY: 0.75, Upscale: true}, "FocusFill100x100-0.250-0.750-up"},
		{TransformSpec{Kind: KindFocusCropWidth, Width: 80, FocusX: 0.5}, "FocusCropWidth80-0.500"},
		{TransformSpec{Kind: KindFocusCropHeight, Height: 40, FocusY: 1}, "FocusCropHeight40-1.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.spec.Name())
	}
}
