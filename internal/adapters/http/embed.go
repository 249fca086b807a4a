package httpadapter

import _ "embed"

//go:embed web/index.html
var landingPage []byte
