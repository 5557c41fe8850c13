// Package migrations embebe los archivos SQL del esquema para compilarlos en el binario.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
