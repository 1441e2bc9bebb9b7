// Package main is the entry point for the glustik CLI.
package main

import (
	"log"

	"github.com/wellmaintained/glustik/cmd"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
