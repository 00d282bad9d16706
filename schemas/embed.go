// Package schemas provides the embedded bootstrap SQL for the vocabulary store.
package schemas

import "embed"

// Bootstrap contains the DDL executed once, when no prior snapshot exists.
//
//go:embed bootstrap/*.sql
var Bootstrap embed.FS
