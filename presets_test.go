package svgx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presetsYAML = `
thumbnail:
  - op: fit
    width: 254
    height: 156
hero:
  - op: scale_width
    width: 1200
  - op: focus_fill
    width: 1200
    height: 400
    focus_x: 0.5
    focus_y: 0.25
`

func TestLoadPresets(t *testing.T) {
	presets, err := LoadPresets([]byte(presetsYAML))
	require.NoError(t, err)
	require.Len(t, presets, 2)

	specs, err := presets["thumbnail"].Specs()
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, TransformSpec{Kind: KindFit, Width: 254, Height: 156}, specs[0])

	specs, err = presets["hero"].Specs()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, KindScaleWidth, specs[0].Kind)
	assert.Equal(t, KindFocusFill, specs[1].Kind)
	assert.Equal(t, 0.25, specs[1].FocusY)
}

func TestLoadPresetsRejectsUnknownOp(t *testing.T) {
	_, err := LoadPresets([]byte("bad:\n  - op: sharpen\n    width: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "sharpen"`)
	assert.Contains(t, err.Error(), "valid:", "the error should list valid ops")
}

func TestLoadPresetsRejectsEmptyPipeline(t *testing.T) {
	_, err := LoadPresets([]byte("empty: []\n"))
	assert.Error(t, err)
}

func TestLoadPresetsRejectsGarbage(t *testing.T) {
	_, err := LoadPresets([]byte("\t not yaml: ["))
	assert.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	engine := New(Config{})
	presets, err := LoadPresets([]byte(presetsYAML))
	require.NoError(t, err)

	asset := engine.Load("42", []byte(sourceDoc))
	out, err := asset.ApplyPreset(presets["thumbnail"])
	require.NoError(t, err)
	assert.Equal(t, "Fit254x156", out.Variant)

	out, err = asset.ApplyPreset(presets["hero"])
	require.NoError(t, err)
	assert.Equal(t, "ScaleWidth1200_FocusFill1200x400-0.500-0.250", out.Variant)
}

func TestApplyPresetInvalidStep(t *testing.T) {
	engine := New(Config{})
	asset := engine.Load("42", []byte(sourceDoc))

	_, err := asset.ApplyPreset(Preset{{Op: "sharpen"}})
	assert.Error(t, err)
}
