// Package data embeds the default scenario: the drowned village of
// Saltmarsh and the bell that rings beneath it.
package data

import "embed"

//go:embed events/*.yaml locations/*.yaml
var FS embed.FS
