//go:build cgo

package database

import _ "github.com/tursodatabase/go-libsql" // libsql driver requires cgo
