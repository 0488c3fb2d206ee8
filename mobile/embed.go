//go:build mobile

// Copy data/ into this directory before building; //go:embed cannot reach
// the repository root from here.
package mobile

import "embed"

//go:embed data
var dataFS embed.FS
