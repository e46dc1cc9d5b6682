// SPDX-License-Identifier: MPL-2.0

package cpython

import "strings"

// Environment variables that carry the explicit configuration to a child interpreter.
const (
	HomeVar = "PYTHONHOME"
	PathVar = "PYTHONPATH"
)

// FilterPythonEnvVars drops every PYTHON* variable from environ, so a child
// interpreter sees none of the ambient interpreter settings.
func FilterPythonEnvVars(environ []string) []string {
	result := make([]string, 0, len(environ))
	for _, e := range environ {
		name, _, ok := strings.Cut(e, "=")
		if !ok {
			// Malformed env var, keep it
			result = append(result, e)
			continue
		}
		if strings.HasPrefix(strings.ToUpper(name), "PYTHON") {
			continue
		}
		result = append(result, e)
	}
	return result
}
