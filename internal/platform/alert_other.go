// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package platform

type nativeAlerter struct{}

// Alert does nothing: there is no windowing subsystem to raise a modal on.
func (nativeAlerter) Alert(string, string) {}
