// Package main is the entry point for the slideplay application.
package main

import (
	"github.com/samber/lo"

	"github.com/slideplay/slideplay/cmd"
	"github.com/slideplay/slideplay/config"
	"github.com/slideplay/slideplay/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
