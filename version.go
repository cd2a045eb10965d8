package tmsim

import _ "embed"

// Version is the release of the tmsim module.
//
//go:embed VERSION
var Version string
