// Package main is the entry point for the Tijarah client CLI.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/tijarah-io/tijarah/internal/cli"
)

func main() {
	cli.NewApp().Run()
}
