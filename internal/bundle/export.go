// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/pybundle/pybundle/pkg/cueutil"
)

// Export formats.
const (
	FormatJSON ExportFormat = "json"
	FormatTOML ExportFormat = "toml"
	FormatCUE  ExportFormat = "cue"
)

//go:embed layout_schema.cue
var layoutSchema string

// ExportFormat selects the serialization used by Export.
type ExportFormat string

// ExportFormats lists the supported formats.
func ExportFormats() []ExportFormat {
	return []ExportFormat{FormatJSON, FormatTOML, FormatCUE}
}

// Export serializes the layout. The CUE form is checked against the
// #BundleLayout schema before it is printed.
func Export(l Layout, f ExportFormat) ([]byte, error) {
	switch f {
	case FormatJSON:
		out, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode layout as json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatTOML:
		out, err := toml.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("encode layout as toml: %w", err)
		}
		return out, nil
	case FormatCUE:
		return exportCUE(l)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

func exportCUE(l Layout) ([]byte, error) {
	out, err := cueutil.EncodeValidated(layoutSchema, "#BundleLayout", l)
	if err != nil {
		return nil, fmt.Errorf("layout does not match the bundle schema: %w", err)
	}
	return out, nil
}
