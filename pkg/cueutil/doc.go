// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks Go values against embedded CUE schemas.
//
// The pattern is always the same:
//
//  1. Compile the embedded schema and look up its definition
//  2. Encode the Go value and unify it with the definition
//  3. Validate the result as concrete and format it
//
// # Usage
//
//	//go:embed layout_schema.cue
//	var layoutSchema string
//
//	out, err := cueutil.EncodeValidated(layoutSchema, "#BundleLayout", layout)
//	if err != nil {
//	    return nil, err // error lines carry the CUE path of each violation
//	}
package cueutil
