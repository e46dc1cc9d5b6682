// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PathResolutionId Id = iota + 1
	MissingBundleMemberId
	EnvironmentWriteId
	TargetNotFoundId
	ProcessCreationId
	RuntimeConfigurationId
	RuntimeFailedId
	UnknownLaunchModeId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failing mechanism
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Title is the text of the first Markdown heading.
func (i *Issue) Title() string {
	for _, line := range strings.Split(string(i.mdMsg), "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const initConfigDocs HttpLink = "https://docs.python.org/3/c-api/init_config.html"

var (
	render = glamour.Render

	pathResolutionIssue = &Issue{
		id: PathResolutionId,
		mdMsg: `
# The launcher could not locate itself!

The operating system did not report a usable path for the running executable,
so the bundle next to it cannot be found.

## Things you can try:
- Start the launcher through its real path instead of a relative link
- Move the bundle to a shorter path if the location is very deep
- On Linux, check that /proc is mounted`,
	}

	missingBundleMemberIssue = &Issue{
		id: MissingBundleMemberId,
		mdMsg: `
# The application bundle is incomplete!

A directory or file the launcher needs is missing or has the wrong type.
The launcher stopped before changing any environment variable.

## Expected layout:
~~~
<root>/
  bin/          launcher, application and interpreter executables
  lib/          application modules
  packages/     third-party packages
  python.zip    packaged standard library
~~~

## Things you can try:
- Reinstall the application
- Check that antivirus software did not quarantine files under bin/
- Inspect the bundle:
~~~
$ pybundle check --root <root>
~~~`,
		docLinks: []HttpLink{"https://docs.python.org/3/using/cmdline.html#envvar-PYTHONHOME"},
	}

	environmentWriteIssue = &Issue{
		id: EnvironmentWriteId,
		mdMsg: `
# The launcher could not prepare its environment!

The operating system refused to set a process environment variable or to
register the bundle's bin/ directory as a library search directory.
Variables written before the failure were restored.

## Things you can try:
- Check for very long PATH values (Windows limits each variable to 32767 characters)
- Retry from a fresh shell`,
	}

	targetNotFoundIssue = &Issue{
		id: TargetNotFoundId,
		mdMsg: `
# The application executable was not found!

The launcher hands control to a companion executable inside bin/, but that
file does not exist or is not a regular file.

## Things you can try:
- Reinstall the application
- List the executables the launcher expects:
~~~
$ pybundle layout
~~~`,
	}

	processCreationIssue = &Issue{
		id: ProcessCreationId,
		mdMsg: `
# The application could not be started!

The operating system refused to create the application process. The number
in parentheses is the platform error code.

## Things you can try:
- Check that the executable has execute permission
- Check that the executable matches this machine's architecture
- On Windows, look the code up with:
~~~
> certutil -error <code>
~~~`,
	}

	runtimeConfigurationIssue = &Issue{
		id: RuntimeConfigurationId,
		mdMsg: `
# The embedded runtime rejected its configuration!

A configuration value derived from the bundle could not be applied, so the
runtime was never started.

## Things you can try:
- Move the bundle to a path without unusual characters
- Reinstall the application`,
		docLinks: []HttpLink{initConfigDocs},
	}

	runtimeFailedIssue = &Issue{
		id: RuntimeFailedId,
		mdMsg: `
# The application reported a fatal error!

The bundled runtime ran the application and returned a non-zero status.
The status is passed on unchanged as the launcher's exit code.

## Things you can try:
- Run the console launcher from a terminal to see the traceback
- Re-run with debug logging:
~~~
$ PYBUNDLE_LOG_LEVEL=debug <launcher>
~~~`,
		docLinks: []HttpLink{initConfigDocs},
	}

	unknownLaunchModeIssue = &Issue{
		id: UnknownLaunchModeId,
		mdMsg: `
# Unknown launch mode!

## Valid launch modes:
- **launch**: start the application executable as a child process
- **console**: run the embedded interpreter interactively
- **windowed**: run the application entry point in the embedded interpreter`,
	}

	issues = map[Id]*Issue{
		pathResolutionIssue.Id():       pathResolutionIssue,
		missingBundleMemberIssue.Id():  missingBundleMemberIssue,
		environmentWriteIssue.Id():     environmentWriteIssue,
		targetNotFoundIssue.Id():       targetNotFoundIssue,
		processCreationIssue.Id():      processCreationIssue,
		runtimeConfigurationIssue.Id(): runtimeConfigurationIssue,
		runtimeFailedIssue.Id():        runtimeFailedIssue,
		unknownLaunchModeIssue.Id():    unknownLaunchModeIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
