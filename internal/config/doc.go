// SPDX-License-Identifier: MPL-2.0

// Package config reads the launcher's own settings from PYBUNDLE_* environment
// variables using Viper. There is no configuration file: a bundle is launched
// the same way on every machine, and these settings only tune diagnostics.
package config
