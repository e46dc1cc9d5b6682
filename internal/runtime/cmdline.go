// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"slices"

	"github.com/pybundle/pybundle/internal/platform"
	"github.com/pybundle/pybundle/pkg/types"
)

// BuildCommandLine returns target followed by args[1:]. The program name in
// args[0] is dropped. Arguments are forwarded as received: nothing is quoted,
// so an argument holding spaces reaches the child as several words.
func BuildCommandLine(target types.FilesystemPath, args []string) platform.CommandLine {
	var forwarded []string
	if len(args) > 1 {
		forwarded = slices.Clone(args[1:])
	}
	return platform.CommandLine{Executable: target, Arguments: forwarded}
}
