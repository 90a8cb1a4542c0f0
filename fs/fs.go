package appfs

import "embed"

// FS embeds runtime assets (database migrations).
//go:embed migrations
var FS embed.FS
