// Package migrations embeds the scoreboard schema
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
