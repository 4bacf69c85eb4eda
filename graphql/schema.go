package graphql

import (
	_ "embed"
)

//go:embed schema.graphqls
var schema string

// Schema returns the SDL served at /graphql.
func Schema() string {
	return schema
}
