package svgx

import (
	"fmt"

	"github.com/flanksource/svgx/geometry"
)

// Kind enumerates the transform operations.
type Kind string

const (
	KindFit             Kind = "Fit"
	KindFitMax          Kind = "FitMax"
	KindFill            Kind = "Fill"
	KindFillMax         Kind = "FillMax"
	KindPad             Kind = "Pad"
	KindScaleWidth      Kind = "ScaleWidth"
	KindScaleHeight     Kind = "ScaleHeight"
	KindCropRegion      Kind = "CropRegion"
	KindCropWidth       Kind = "CropWidth"
	KindCropHeight      Kind = "CropHeight"
	KindFocusFill       Kind = "FocusFill"
	KindFocusCropWidth  Kind = "FocusCropWidth"
	KindFocusCropHeight Kind = "FocusCropHeight"
)

// TransformSpec names a transform and carries its parameters. It is immutable
// once built; its canonical Name is both the cache key component and the
// variant suffix used when chaining.
type TransformSpec struct {
	Kind   Kind
	Width  int
	Height int

	// CropRegion window origin, relative to the current viewBox origin.
	X int
	Y int

	// Focus point in normalized [0,1] coordinates from the top-left of the
	// coordinate space.
	FocusX float64
	FocusY float64

	// Upscale lets FocusFill grow documents smaller than the target.
	Upscale bool
}

// Name returns the canonical variant name for the spec. Two specs with the
// same name must always produce bit-identical output for the same source,
// which is what makes the variant cache sound.
func (s TransformSpec) Name() string {
	switch s.Kind {
	case KindFit, KindFitMax, KindFill, KindFillMax, KindPad:
		return fmt.Sprintf("%s%dx%d", s.Kind, s.Width, s.Height)
	case KindScaleWidth, KindCropWidth:
		return fmt.Sprintf("%s%d", s.Kind, s.Width)
	case KindScaleHeight, KindCropHeight:
		return fmt.Sprintf("%s%d", s.Kind, s.Height)
	case KindCropRegion:
		return fmt.Sprintf("%s%d-%d-%dx%d", s.Kind, s.X, s.Y, s.Width, s.Height)
	case KindFocusFill:
		name := fmt.Sprintf("%s%dx%d-%.3f-%.3f", s.Kind, s.Width, s.Height, s.FocusX, s.FocusY)
		if s.Upscale {
			name += "-up"
		}
		return name
	case KindFocusCropWidth:
		return fmt.Sprintf("%s%d-%.3f", s.Kind, s.Width, s.FocusX)
	case KindFocusCropHeight:
		return fmt.Sprintf("%s%d-%.3f", s.Kind, s.Height, s.FocusY)
	default:
		return string(s.Kind)
	}
}

// layout dispatches to the geometry function for the spec's kind.
func (s TransformSpec) layout(vb geometry.Rect) (geometry.Layout, error) {
	switch s.Kind {
	case KindFit:
		return geometry.Fit(vb, s.Width, s.Height), nil
	case KindFitMax:
		return geometry.FitMax(vb, s.Width, s.Height), nil
	case KindFill:
		return geometry.Fill(vb, s.Width, s.Height), nil
	case KindFillMax:
		return geometry.FillMax(vb, s.Width, s.Height), nil
	case KindPad:
		return geometry.Pad(vb, s.Width, s.Height), nil
	case KindScaleWidth:
		return geometry.ScaleWidth(vb, s.Width), nil
	case KindScaleHeight:
		return geometry.ScaleHeight(vb, s.Height), nil
	case KindCropRegion:
		return geometry.CropRegion(vb, s.X, s.Y, s.Width, s.Height), nil
	case KindCropWidth:
		return geometry.CropWidth(vb, s.Width), nil
	case KindCropHeight:
		return geometry.CropHeight(vb, s.Height), nil
	case KindFocusFill:
		return geometry.FocusFill(vb, s.Width, s.Height, s.FocusX, s.FocusY, s.Upscale), nil
	case KindFocusCropWidth:
		return geometry.FocusCropWidth(vb, s.Width, s.FocusX), nil
	case KindFocusCropHeight:
		return geometry.FocusCropHeight(vb, s.Height, s.FocusY), nil
	default:
		return geometry.Layout{}, fmt.Errorf("%w: unknown transform %q", ErrGeneration, s.Kind)
	}
}

// Apply runs a single transform against raw document bytes, without any
// caching. Scalable documents (no intrinsic size) pass through unchanged:
// with no coordinate space there is nothing to transform against.
func Apply(data []byte, spec TransformSpec) ([]byte, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()

	vb, ok := coordinateSpace(root)
	if !ok {
		return data, nil
	}

	layout, err := spec.layout(vb)
	if err != nil {
		return nil, err
	}
	if layout == geometry.Identity(vb) {
		// A no-op transform returns the source byte-for-byte; rewriting
		// attributes here would clobber display sizes set by earlier links
		// of a chain.
		return data, nil
	}

	writeLayout(root, layout)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return out, nil
}
