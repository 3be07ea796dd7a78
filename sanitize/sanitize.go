// Package sanitize scrubs untrusted SVG markup before it enters the asset
// pipeline: script payloads, event handlers, and hostile hyperlink targets
// are removed while the document's geometry and drawing content are kept
// intact.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Elements that can execute or smuggle active content inside an SVG.
var blockedElements = map[string]bool{
	"script":        true,
	"foreignObject": true,
}

// Attributes that reference other content and need their value vetted.
var hrefAttrs = map[string]bool{
	"href":       true,
	"xlink:href": true,
}

// Options control what the sanitizer tolerates.
type Options struct {
	// AllowExternalReferences keeps http(s) hyperlink targets instead of
	// stripping them.
	AllowExternalReferences bool

	// AllowDataURIs keeps all data: URIs. By default only data:image/
	// payloads survive.
	AllowDataURIs bool
}

// Sanitizer removes active content from SVG documents.
type Sanitizer struct {
	options Options
}

// New creates a sanitizer.
func New(options Options) *Sanitizer {
	return &Sanitizer{options: options}
}

// Sanitize returns a scrubbed copy of the document.
func (s *Sanitizer) Sanitize(data []byte) ([]byte, error) {
	clean, _, err := s.Clean(data)
	return clean, err
}

// Clean returns the scrubbed document plus a description of everything that
// was removed, for diagnostics.
func (s *Sanitizer) Clean(data []byte) ([]byte, []string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, nil, fmt.Errorf("sanitize: unparseable document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("sanitize: no root element")
	}

	var removed []string
	s.scrub(root, &removed)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, nil, fmt.Errorf("sanitize: serialize failed: %w", err)
	}
	return out, removed, nil
}

func (s *Sanitizer) scrub(el *etree.Element, removed *[]string) {
	var drop []*etree.Element
	for _, child := range el.ChildElements() {
		if blockedElements[child.Tag] {
			drop = append(drop, child)
			continue
		}
		s.scrub(child, removed)
	}
	for _, child := range drop {
		el.RemoveChild(child)
		*removed = append(*removed, "element <"+child.Tag+">")
	}

	var dropAttrs []string
	for _, attr := range el.Attr {
		full := attr.Key
		if attr.Space != "" {
			full = attr.Space + ":" + attr.Key
		}
		if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
			dropAttrs = append(dropAttrs, full)
			continue
		}
		if hrefAttrs[full] && !s.allowedTarget(attr.Value) {
			dropAttrs = append(dropAttrs, full)
		}
	}
	for _, key := range dropAttrs {
		el.RemoveAttr(key)
		*removed = append(*removed, "attribute "+key+" on <"+el.Tag+">")
	}
}

// allowedTarget vets a hyperlink value. Fragment references stay (gradients,
// clip paths and filters all use them), javascript: never does, and external
// or data targets depend on the options.
func (s *Sanitizer) allowedTarget(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "" || strings.HasPrefix(v, "#"):
		return true
	case strings.HasPrefix(v, "javascript:"):
		return false
	case strings.HasPrefix(v, "data:image/"):
		return true
	case strings.HasPrefix(v, "data:"):
		return s.options.AllowDataURIs
	case strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "//"):
		return s.options.AllowExternalReferences
	default:
		// Relative paths and unknown schemes are treated as external.
		return s.options.AllowExternalReferences
	}
}
