// Package main is the entry point for the Tijarah mock backend.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/tijarah-io/tijarah/internal/mockd"
)

func main() {
	mockd.NewApp().Run()
}
