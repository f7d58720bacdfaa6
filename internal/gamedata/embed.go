// Package gamedata provides the board presets and colour theme embedded in the binary.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
