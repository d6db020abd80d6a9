// Package web holds the static landing page served on the index routes.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
