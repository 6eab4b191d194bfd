package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-hybrid-reflections/log"
)

var logger = log.New("hybrid-reflections")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
