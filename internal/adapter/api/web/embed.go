package web

import _ "embed"

// IndexHTML is the default host page.
//
//go:embed index.html
var IndexHTML []byte
