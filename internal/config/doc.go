// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for semfilter's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/semfilter.yaml or $HOME/.config/semfilter.yaml
//   - macOS: $HOME/Library/Application Support/semfilter.yaml
//   - Windows: %APPDATA%/semfilter.yaml
//
// SEMFILTER_CFG_FILE overrides the location. Besides flag defaults the file
// holds the named rules that "semfilter eval --named" and "semfilter rules"
// use.
package config
