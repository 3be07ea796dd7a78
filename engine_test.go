package svgx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/svgx/store"
)

var testKey = store.Key{FileID: "1", Hash: "abc", Variant: "Fit100x100"}

func fitGenerator(spec TransformSpec) GeneratorFunc {
	return func(source []byte, _ Dimensions) ([]byte, error) {
		return Apply(source, spec)
	}
}

func TestGetOrCreateVariantGeneratesOnce(t *testing.T) {
	engine := New(Config{})
	calls := 0
	generate := func(source []byte, dims Dimensions) ([]byte, error) {
		calls++
		return Apply(source, TransformSpec{Kind: KindFit, Width: 100, Height: 100})
	}

	first, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, true)
	require.NoError(t, err)
	second, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, true)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "generation happens at most once per key")
	assert.Equal(t, first, second)
}

func TestGetOrCreateVariantGenerationDisabled(t *testing.T) {
	engine := New(Config{})
	generate := fitGenerator(TransformSpec{Kind: KindFit, Width: 100, Height: 100})

	_, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, false)
	assert.ErrorIs(t, err, ErrNotFound)

	// Once another caller has generated it, disabled callers read it fine.
	_, err = engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, true)
	require.NoError(t, err)
	data, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, false)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGetOrCreateVariantGeneratorFailure(t *testing.T) {
	engine := New(Config{})
	boom := errors.New("boom")
	generate := func([]byte, Dimensions) ([]byte, error) { return nil, boom }

	_, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, true)
	assert.ErrorIs(t, err, boom)

	var terr *TransformError
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, "Fit100x100", terr.Variant)

	// Nothing was stored; the failure is not cached.
	exists, serr := engine.Store().Exists(testKey)
	require.NoError(t, serr)
	assert.False(t, exists)
}

func TestGetOrCreateVariantNonDocumentOutput(t *testing.T) {
	engine := New(Config{})
	generate := func([]byte, Dimensions) ([]byte, error) { return []byte("not a document"), nil }

	_, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, true)
	assert.ErrorIs(t, err, ErrGeneration)

	exists, serr := engine.Store().Exists(testKey)
	require.NoError(t, serr)
	assert.False(t, exists)
}

func TestGetOrCreateVariantUnparseableSource(t *testing.T) {
	engine := New(Config{})
	generate := fitGenerator(TransformSpec{Kind: KindFit, Width: 100, Height: 100})

	_, err := engine.GetOrCreateVariant(testKey, []byte("<svg><broken"), generate, true)
	assert.ErrorIs(t, err, ErrParse)
}

// failingStore rejects everything, to exercise the store failure path.
type failingStore struct{}

func (failingStore) Exists(store.Key) (bool, error) { return false, errors.New("disk on fire") }
func (failingStore) Get(store.Key) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingStore) Put(store.Key, []byte) error { return errors.New("disk on fire") }

func TestGetOrCreateVariantStoreFailure(t *testing.T) {
	engine := New(Config{Store: failingStore{}})
	generate := fitGenerator(TransformSpec{Kind: KindFit, Width: 100, Height: 100})

	_, err := engine.GetOrCreateVariant(testKey, []byte(sourceDoc), generate, true)
	assert.ErrorIs(t, err, ErrStore)
}

func TestLoadHashesContent(t *testing.T) {
	engine := New(Config{})

	a := engine.Load("42", []byte(sourceDoc))
	b := engine.Load("42", []byte(sourceDoc))
	assert.Equal(t, a.Hash, b.Hash, "identical bytes share an identity")

	c := engine.Load("42", []byte(`<svg viewBox="0 0 1 1"/>`))
	assert.NotEqual(t, a.Hash, c.Hash, "re-uploaded content gets a fresh key space")

	assert.Equal(t, "42", a.FileID)
	assert.Empty(t, a.Variant)
	assert.Equal(t, []byte(sourceDoc), a.Bytes())
}

func TestLoadSanitizes(t *testing.T) {
	engine := New(Config{SanitizeOnLoad: true})

	asset := engine.Load("1", []byte(`<svg viewBox="0 0 10 10" onload="evil()"><script>x</script><rect width="5" height="5"/></svg>`))
	out := string(asset.Bytes())
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onload")
	assert.Contains(t, out, "<rect")
}

func TestLoadSanitizeFailureKeepsOriginal(t *testing.T) {
	engine := New(Config{SanitizeOnLoad: true})

	raw := []byte("<svg><broken")
	asset := engine.Load("1", raw)
	assert.Equal(t, raw, asset.Bytes(), "unsanitizable input degrades to the original bytes")
}
