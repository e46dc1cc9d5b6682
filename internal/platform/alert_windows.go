// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import "golang.org/x/sys/windows"

type nativeAlerter struct{}

// Alert shows a blocking error message box with a single OK button.
// Conversion or display failures are dropped; the text diagnostic already went out.
func (nativeAlerter) Alert(title, message string) {
	text, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return
	}
	caption, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	_, _ = windows.MessageBox(0, text, caption, windows.MB_OK|windows.MB_ICONERROR)
}
