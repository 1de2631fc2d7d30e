// cmd/switchctl/main.go
package main

import (
	"log"
	"os"

	"github.com/urfave/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("switchctl: ")

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "switchctl"
	app.Usage = "control a weekly timer switch over its serial link"
	app.UsageText = "switchctl [global options] <command> [arguments...]"
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		{
			Name:   "read-input",
			Usage:  "print the raw input port byte",
			Action: readInput,
		},
		{
			Name:   "enable",
			Usage:  "enable schedule mode",
			Action: setSchedule(true),
		},
		{
			Name:   "disable",
			Usage:  "disable schedule mode",
			Action: setSchedule(false),
		},
		{
			Name:   "get-time",
			Usage:  "print the device clock",
			Action: getTime,
		},
		{
			Name:   "sync-time",
			Usage:  "copy the host clock to the device and enable schedule mode",
			Action: syncTime,
		},
		{
			Name:   "on",
			Usage:  "switch all outputs on",
			Action: setOutputs(true),
		},
		{
			Name:   "off",
			Usage:  "switch all outputs off",
			Action: setOutputs(false),
		},
		{
			Name:   "is-on",
			Usage:  "print whether the outputs are on",
			Action: isOn,
		},
		{
			Name:   "dump",
			Usage:  "print every schedule slot",
			Action: dump,
		},
		{
			Name:      "clear",
			Usage:     "make one schedule slot inactive",
			ArgsUsage: "<pos>",
			Action:    clearEntry,
		},
		{
			Name:   "clear-all",
			Usage:  "make every schedule slot inactive",
			Action: clearAll,
		},
		{
			Name:      "set",
			Usage:     "write one schedule slot",
			ArgsUsage: "<pos> <sun|mon|tue|wed|thu|fri|sat> <hour> <minute> <on|off>",
			Action:    setEntry,
		},
	}
	return app
}
