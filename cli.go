//go:build cli
// +build cli

package main

import (
	_ "products.GO/custom"

	"products.GO/cmd"
	"products.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
