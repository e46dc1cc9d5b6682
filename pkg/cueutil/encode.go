// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// EncodeValidated encodes v as a CUE value, unifies it with the definition
// named in schema and returns the formatted, concrete result. Struct fields
// are named after their json tags.
func EncodeValidated(schema, definition string, v any) ([]byte, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(definition))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", definition, def.Err())
	}

	value := ctx.Encode(v)
	if value.Err() != nil {
		return nil, fmt.Errorf("encode %T as cue: %w", v, value.Err())
	}
	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, definition)
	}

	out, err := format.Node(unified.Syntax(cue.Final(), cue.Concrete(true)))
	if err != nil {
		return nil, fmt.Errorf("format cue value: %w", err)
	}
	return append(out, '\n'), nil
}
