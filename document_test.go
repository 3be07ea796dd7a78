package svgx

import (
	"bytes"
	"testing"

	svgo "github.com/ajstarks/svgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDimensionsViewBox(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  float64
		height float64
	}{
		{"plain", `<svg viewBox="0 0 200 150"/>`, 200, 150},
		// viewBox is "min-x min-y width height": a non-zero origin must not
		// shift the reported size.
		{"non-zero origin", `<svg viewBox="10 10 200 150"/>`, 200, 150},
		{"negative origin", `<svg viewBox="-50 -25 300 200"/>`, 300, 200},
		{"comma separated", `<svg viewBox="0,0,200,150"/>`, 200, 150},
		{"mixed separators", `<svg viewBox="0, 0 200, 150"/>`, 200, 150},
		{"fractional", `<svg viewBox="0 0 199.5 149.25"/>`, 199.5, 149.25},
		{"wins over attributes", `<svg viewBox="0 0 200 150" width="999" height="999"/>`, 200, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dims, err := ReadDimensions([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.width, dims.Width)
			assert.Equal(t, tt.height, dims.Height)
			assert.False(t, dims.Scalable())
		})
	}
}

func TestReadDimensionsAttributes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  float64
		height float64
	}{
		{"bare numbers", `<svg width="200" height="150"/>`, 200, 150},
		{"px units", `<svg width="200px" height="150px"/>`, 200, 150},
		{"pt units", `<svg width="12pt" height="24pt"/>`, 12, 24},
		{"percent", `<svg width="100%" height="50%"/>`, 100, 50},
		{"fractional", `<svg width="19.5" height="7.25"/>`, 19.5, 7.25},
		// Unparseable viewBox falls back to the attributes.
		{"broken viewBox", `<svg viewBox="not a box" width="80" height="60"/>`, 80, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dims, err := ReadDimensions([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.width, dims.Width)
			assert.Equal(t, tt.height, dims.Height)
		})
	}
}

func TestReadDimensionsScalable(t *testing.T) {
	tests := []string{
		`<svg/>`,
		`<svg xmlns="http://www.w3.org/2000/svg"><rect width="5" height="5"/></svg>`,
		`<svg width="200"/>`,
		`<svg width="banana" height="150"/>`,
	}
	for _, input := range tests {
		dims, err := ReadDimensions([]byte(input))
		require.NoError(t, err, "scalable documents are a valid result, not an error: %s", input)
		assert.True(t, dims.Scalable())
		assert.Equal(t, "scalable", dims.String())
	}
}

func TestReadDimensionsMalformed(t *testing.T) {
	tests := []string{
		`<svg viewBox="0 0 1 1"`,
		`not xml at all <<<<`,
		``,
		`<?xml version="1.0"?>`,
	}
	for _, input := range tests {
		_, err := ReadDimensions([]byte(input))
		assert.ErrorIs(t, err, ErrParse, "input: %s", input)
	}
}

func TestReadDimensionsGenerated(t *testing.T) {
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Start(640, 480)
	canvas.Circle(320, 240, 100, "fill:blue")
	canvas.End()

	dims, err := ReadDimensions(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, float64(640), dims.Width)
	assert.Equal(t, float64(480), dims.Height)
}

func TestDimensionsString(t *testing.T) {
	assert.Equal(t, "200x150", Dimensions{Width: 200, Height: 150}.String())
	assert.Equal(t, "199.5x150", Dimensions{Width: 199.5, Height: 150}.String())
}
