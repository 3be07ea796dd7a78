package svgx

import (
	"github.com/flanksource/commons/logger"

	"github.com/flanksource/svgx/store"
)

// Asset is a transformable document: either an original or the output of a
// previous transform. Every transform method returns another Asset, so calls
// chain without the caller caring which it holds. Failures never propagate
// out of a transform; the receiver is returned unchanged instead, because an
// image that cannot be resized must still render.
type Asset struct {
	engine *Engine

	// FileID is the host's stable handle for the source file.
	FileID string

	// Hash is the content digest of the original bytes.
	Hash string

	// Variant is the transform chain name, empty for the original.
	Variant string

	data []byte
}

// Bytes returns the document bytes.
func (a *Asset) Bytes() []byte {
	return a.data
}

// Dimensions reads the asset's intrinsic size.
func (a *Asset) Dimensions() (Dimensions, error) {
	return ReadDimensions(a.data)
}

// Key returns the variant store key for this asset. The original (empty
// variant) is never stored; only derived variants are.
func (a *Asset) Key() store.Key {
	return store.Key{FileID: a.FileID, Hash: a.Hash, Variant: a.Variant}
}

// Transform applies spec through the variant cache. Chained calls compose
// the variant name as existing + "_" + new, so A.ScaleWidth(200).Fill(100,100)
// caches independently from a single Fill(100,100); no attempt is made to
// algebraically collapse chains.
func (a *Asset) Transform(spec TransformSpec) *Asset {
	variant := spec.Name()
	if a.Variant != "" {
		variant = a.Variant + "_" + variant
	}
	key := store.Key{FileID: a.FileID, Hash: a.Hash, Variant: variant}

	out, err := a.engine.GetOrCreateVariant(key, a.data, func(source []byte, _ Dimensions) ([]byte, error) {
		return Apply(source, spec)
	}, !a.engine.config.DisableGeneration)
	if err != nil {
		logger.Debugf("svgx: %s falling back to source: %v", key, err)
		return a
	}

	return &Asset{
		engine:  a.engine,
		FileID:  a.FileID,
		Hash:    a.Hash,
		Variant: variant,
		data:    out,
	}
}

// Fit scales to fit inside w x h, preserving aspect ratio.
func (a *Asset) Fit(w, h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindFit, Width: w, Height: h})
}

// FitMax fits inside w x h only if the document is larger.
func (a *Asset) FitMax(w, h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindFitMax, Width: w, Height: h})
}

// Fill covers w x h exactly, center-cropping the overflow.
func (a *Asset) Fill(w, h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindFill, Width: w, Height: h})
}

// FillMax fills w x h only if the document is larger.
func (a *Asset) FillMax(w, h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindFillMax, Width: w, Height: h})
}

// Pad letterboxes to the aspect ratio of w x h, centered.
func (a *Asset) Pad(w, h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindPad, Width: w, Height: h})
}

// ScaleWidth scales uniformly to width w.
func (a *Asset) ScaleWidth(w int) *Asset {
	return a.Transform(TransformSpec{Kind: KindScaleWidth, Width: w})
}

// ScaleHeight scales uniformly to height h.
func (a *Asset) ScaleHeight(h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindScaleHeight, Height: h})
}

// CropRegion crops an absolute window at (x, y) of size w x h.
func (a *Asset) CropRegion(x, y, w, h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindCropRegion, X: x, Y: y, Width: w, Height: h})
}

// CropWidth center-crops horizontally to width w.
func (a *Asset) CropWidth(w int) *Asset {
	return a.Transform(TransformSpec{Kind: KindCropWidth, Width: w})
}

// CropHeight center-crops vertically to height h.
func (a *Asset) CropHeight(h int) *Asset {
	return a.Transform(TransformSpec{Kind: KindCropHeight, Height: h})
}

// FocusFill fills w x h keeping the focus point (fx, fy in [0,1]) inside the
// crop window.
func (a *Asset) FocusFill(w, h int, fx, fy float64, upscale bool) *Asset {
	return a.Transform(TransformSpec{
		Kind: KindFocusFill, Width: w, Height: h, FocusX: fx, FocusY: fy, Upscale: upscale,
	})
}

// FocusCropWidth crops horizontally to width w around the focus coordinate.
func (a *Asset) FocusCropWidth(w int, fx float64) *Asset {
	return a.Transform(TransformSpec{Kind: KindFocusCropWidth, Width: w, FocusX: fx})
}

// FocusCropHeight crops vertically to height h around the focus coordinate.
func (a *Asset) FocusCropHeight(h int, fy float64) *Asset {
	return a.Transform(TransformSpec{Kind: KindFocusCropHeight, Height: h, FocusY: fy})
}
