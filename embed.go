// embed.go must stay next to data/ because //go:embed only reaches files in
// the declaring package's directory tree.
package main

import "embed"

//go:embed data
var dataFS embed.FS
