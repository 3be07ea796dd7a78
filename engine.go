package svgx

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/svgx/sanitize"
	"github.com/flanksource/svgx/store"
)

// GeneratorFunc produces transformed bytes from the current source bytes and
// its dimensions. It must be a pure function of its inputs: the same source
// under the same variant key must always yield bit-identical output.
type GeneratorFunc func(source []byte, dims Dimensions) ([]byte, error)

// Config is the explicit engine configuration. There is no ambient state: a
// host that wants different behavior constructs a different engine.
type Config struct {
	// Store holds generated variants. Defaults to an in-memory store.
	Store store.Store

	// DisableGeneration makes every cache miss return ErrNotFound instead of
	// generating, for read-only contexts that must not create variants.
	DisableGeneration bool

	// SanitizeOnLoad scrubs untrusted markup when a document enters the
	// engine.
	SanitizeOnLoad bool

	// Sanitizer overrides the default sanitizer used by SanitizeOnLoad.
	Sanitizer *sanitize.Sanitizer
}

// Engine loads documents and produces cached transform variants.
type Engine struct {
	config    Config
	store     store.Store
	sanitizer *sanitize.Sanitizer
}

// New creates an engine from config.
func New(config Config) *Engine {
	s := config.Store
	if s == nil {
		s = store.NewMemory()
	}
	sz := config.Sanitizer
	if sz == nil && config.SanitizeOnLoad {
		sz = sanitize.New(sanitize.Options{})
	}
	return &Engine{config: config, store: s, sanitizer: sz}
}

// Store returns the engine's variant store.
func (e *Engine) Store() store.Store {
	return e.store
}

// Load wraps raw document bytes as a transformable asset. fileID is the
// host's stable handle for the file; the content hash is computed here so a
// re-uploaded file lands in a fresh region of the variant key space. When
// sanitization is enabled and fails, the original bytes are kept: a broken
// document must degrade, not block.
func (e *Engine) Load(fileID string, data []byte) *Asset {
	if e.sanitizer != nil {
		clean, err := e.sanitizer.Sanitize(data)
		if err != nil {
			logger.Debugf("svgx: sanitize %s failed, keeping original: %v", fileID, err)
		} else {
			data = clean
		}
	}
	return &Asset{
		engine: e,
		FileID: fileID,
		Hash:   contentHash(data),
		data:   data,
	}
}

// GetOrCreateVariant returns the variant stored under key, generating and
// storing it on a miss. Generation happens at most once per distinct key.
// With allowGenerate false a miss returns ErrNotFound. A failing generator,
// or one producing output the parser rejects, stores nothing and returns an
// error; callers fall back to the unmodified source.
//
// Concurrent callers may race to generate the same missing variant. That is
// deliberate: outputs are pure functions of the key, so duplicate stores are
// byte-identical and Put is last-write-wins safe.
func (e *Engine) GetOrCreateVariant(key store.Key, source []byte, generate GeneratorFunc, allowGenerate bool) ([]byte, error) {
	exists, err := e.store.Exists(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if exists {
		data, err := e.store.Get(key)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		if err == nil {
			return data, nil
		}
		// Fall through: the variant vanished between Exists and Get.
	}

	if !allowGenerate {
		return nil, ErrNotFound
	}

	dims, err := ReadDimensions(source)
	if err != nil {
		return nil, &TransformError{Variant: key.Variant, Op: "read", Err: err}
	}

	out, err := generate(source, dims)
	if err != nil {
		return nil, &TransformError{Variant: key.Variant, Op: "generate", Err: err}
	}
	if _, err := parse(out); err != nil {
		return nil, &TransformError{Variant: key.Variant, Op: "generate",
			Err: fmt.Errorf("%w: generator produced a non-document result", ErrGeneration)}
	}

	if err := e.store.Put(key, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return out, nil
}

// contentHash digests file bytes into a stable identity independent of
// filename or path.
func contentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
