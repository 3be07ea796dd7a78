// Package probe inspects and validates SVG documents for diagnostic tooling.
// Inspection reports intrinsic size and element composition; validation runs
// the document through a strict SVG parser. Neither renders anything.
package probe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rustyoz/svg"
	"github.com/srwiley/oksvg"

	"github.com/flanksource/svgx"
)

// Report describes a document's intrinsic size and structure.
type Report struct {
	Dimensions svgx.Dimensions
	Elements   map[string]int
	IDs        []string
}

// Inspect parses the document and reports its size, element counts, and the
// ids carried by identifiable shapes.
func Inspect(data []byte) (*Report, error) {
	dims, err := svgx.ReadDimensions(data)
	if err != nil {
		return nil, err
	}

	parsed, err := svg.ParseSvg(string(data), "probe", 1.0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG structure: %w", err)
	}

	report := &Report{
		Dimensions: dims,
		Elements:   map[string]int{},
	}

	for _, group := range parsed.Groups {
		report.Elements["Group"]++
		walkGroup(&group, report)
	}
	walkElements(parsed.Elements, report)

	return report, nil
}

func walkGroup(group *svg.Group, report *Report) {
	walkElements(group.Elements, report)
}

func walkElements(elements []svg.DrawingInstructionParser, report *Report) {
	for _, element := range elements {
		name := strings.TrimPrefix(fmt.Sprintf("%T", element), "*svg.")
		report.Elements[name]++

		switch el := element.(type) {
		case *svg.Circle:
			if el.ID != "" {
				report.IDs = append(report.IDs, el.ID)
			}
		case *svg.Rect:
			if el.ID != "" {
				report.IDs = append(report.IDs, el.ID)
			}
		case *svg.Group:
			walkGroup(el, report)
		}
	}
}

// Validate runs the document through a strict SVG parser and returns its
// complaint, if any. Parsing only; rasterization is out of scope.
func Validate(data []byte) error {
	if _, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.StrictErrorMode); err != nil {
		return fmt.Errorf("document failed strict validation: %w", err)
	}
	return nil
}
