package svgx

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Step is one operation in a preset pipeline.
type Step struct {
	Op      string  `yaml:"op"`
	Width   int     `yaml:"width,omitempty"`
	Height  int     `yaml:"height,omitempty"`
	X       int     `yaml:"x,omitempty"`
	Y       int     `yaml:"y,omitempty"`
	FocusX  float64 `yaml:"focus_x,omitempty"`
	FocusY  float64 `yaml:"focus_y,omitempty"`
	Upscale bool    `yaml:"upscale,omitempty"`
}

// Preset is a named transform pipeline, the moral equivalent of a CMS
// thumbnail configuration.
type Preset []Step

var opKinds = map[string]Kind{
	"fit":               KindFit,
	"fit_max":           KindFitMax,
	"fill":              KindFill,
	"fill_max":          KindFillMax,
	"pad":               KindPad,
	"scale_width":       KindScaleWidth,
	"scale_height":      KindScaleHeight,
	"crop":              KindCropRegion,
	"crop_width":        KindCropWidth,
	"crop_height":       KindCropHeight,
	"focus_fill":        KindFocusFill,
	"focus_crop_width":  KindFocusCropWidth,
	"focus_crop_height": KindFocusCropHeight,
}

// KindForOp resolves a preset op name to a transform kind.
func KindForOp(op string) (Kind, error) {
	kind, ok := opKinds[op]
	if !ok {
		valid := lo.Keys(opKinds)
		sort.Strings(valid)
		return "", fmt.Errorf("unknown op %q (valid: %s)", op, strings.Join(valid, ", "))
	}
	return kind, nil
}

// Spec converts a step into a TransformSpec.
func (s Step) Spec() (TransformSpec, error) {
	kind, err := KindForOp(s.Op)
	if err != nil {
		return TransformSpec{}, err
	}
	return TransformSpec{
		Kind:    kind,
		Width:   s.Width,
		Height:  s.Height,
		X:       s.X,
		Y:       s.Y,
		FocusX:  s.FocusX,
		FocusY:  s.FocusY,
		Upscale: s.Upscale,
	}, nil
}

// Specs converts the whole pipeline, failing on the first invalid step.
func (p Preset) Specs() ([]TransformSpec, error) {
	specs := make([]TransformSpec, 0, len(p))
	for i, step := range p {
		spec, err := step.Spec()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// LoadPresets parses a YAML document mapping preset names to pipelines.
// Every step is validated up front so a broken preset file fails at load
// time, not in the middle of serving an image.
func LoadPresets(data []byte) (map[string]Preset, error) {
	var presets map[string]Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	for name, preset := range presets {
		if len(preset) == 0 {
			return nil, fmt.Errorf("preset %q has no steps", name)
		}
		if _, err := preset.Specs(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return presets, nil
}

// LoadPresetsFile reads presets from a YAML file.
func LoadPresetsFile(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	return LoadPresets(data)
}

// ApplyPreset runs the pipeline against the asset. Invalid steps surface as
// an error; transform failures inside a valid pipeline degrade per the usual
// chaining contract.
func (a *Asset) ApplyPreset(preset Preset) (*Asset, error) {
	specs, err := preset.Specs()
	if err != nil {
		return nil, err
	}
	out := a
	for _, spec := range specs {
		out = out.Transform(spec)
	}
	return out, nil
}
