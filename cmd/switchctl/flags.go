// cmd/switchctl/flags.go
package main

import (
	"time"

	"github.com/urfave/cli"

	"github.com/tamzrod/timerswitch/internal/protocol"
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "port, p",
		Value:  "/dev/ttyUSB0",
		Usage:  "serial device of the timer switch",
		EnvVar: "TIMERSWITCH_PORT",
	},
	cli.IntFlag{
		Name:  "baud, b",
		Value: protocol.BaudRate,
		Usage: "link baud rate",
	},
	cli.DurationFlag{
		Name:  "timeout, t",
		Value: 2 * time.Second,
		Usage: "reply timeout",
	},
}
