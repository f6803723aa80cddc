// Package schemas embeds the JSON schemas of broker events.
package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
