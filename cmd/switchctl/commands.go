// cmd/switchctl/commands.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/tamzrod/timerswitch/internal/event"
	"github.com/tamzrod/timerswitch/internal/protocol"
	"github.com/tamzrod/timerswitch/internal/serialport"
)

// clearAllPause gives the device time to persist each slot: writes are not
// acknowledged and only one entry can be staged at a time.
const clearAllPause = time.Second / 32

// dial is replaced in tests.
var dial = func(c *cli.Context) (io.ReadWriteCloser, error) {
	return serialport.Open(serialport.Config{
		Address:  c.GlobalString("port"),
		BaudRate: c.GlobalInt("baud"),
		Timeout:  c.GlobalDuration("timeout"),
	})
}

var stdout io.Writer = os.Stdout

func withClient(c *cli.Context, fn func(*protocol.Client) error) error {
	link, err := dial(c)
	if err != nil {
		return err
	}
	defer link.Close()
	return fn(protocol.NewClient(link))
}

func readInput(c *cli.Context) error {
	return withClient(c, func(cl *protocol.Client) error {
		v, err := cl.InputLine()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "0x%02x\n", v)
		return nil
	})
}

func setSchedule(on bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		return withClient(c, func(cl *protocol.Client) error {
			if err := cl.SetScheduleEnabled(on); err != nil {
				return err
			}
			return printSchedule(cl)
		})
	}
}

func getTime(c *cli.Context) error {
	return withClient(c, func(cl *protocol.Client) error {
		return printTime(cl, "Current time")
	})
}

func syncTime(c *cli.Context) error {
	return withClient(c, func(cl *protocol.Client) error {
		if err := cl.SyncTime(time.Now()); err != nil {
			return err
		}
		if err := printTime(cl, "Time is now"); err != nil {
			return err
		}
		return printSchedule(cl)
	})
}

func setOutputs(on bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		return withClient(c, func(cl *protocol.Client) error {
			return cl.SetOutputs(on)
		})
	}
}

func isOn(c *cli.Context) error {
	return withClient(c, func(cl *protocol.Client) error {
		mask, err := cl.Outputs()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Outputs on: %v\n", mask != 0)
		return nil
	})
}

func dump(c *cli.Context) error {
	return withClient(c, dumpEntries)
}

func clearEntry(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("usage: switchctl clear <pos>", 1)
	}
	pos, err := parseSlot(c.Args().Get(0))
	if err != nil {
		return err
	}
	return withClient(c, func(cl *protocol.Client) error {
		if err := cl.ClearEntry(pos); err != nil {
			return err
		}
		time.Sleep(clearAllPause)
		return dumpEntries(cl)
	})
}

func clearAll(c *cli.Context) error {
	return withClient(c, func(cl *protocol.Client) error {
		for i := 0; i < event.Slots; i++ {
			if err := cl.ClearEntry(uint8(i)); err != nil {
				return err
			}
			time.Sleep(clearAllPause)
		}
		return nil
	})
}

func setEntry(c *cli.Context) error {
	if c.NArg() != 5 {
		return cli.NewExitError("usage: switchctl set <pos> <day> <hour> <minute> <on|off>", 1)
	}
	args := c.Args()

	pos, err := parseSlot(args.Get(0))
	if err != nil {
		return err
	}
	e, err := parseEntry(args.Get(1), args.Get(2), args.Get(3), args.Get(4))
	if err != nil {
		return err
	}

	return withClient(c, func(cl *protocol.Client) error {
		return cl.SetEntry(pos, e)
	})
}

// ---- helpers ----

func printTime(cl *protocol.Client, label string) error {
	day, minute, err := cl.Time()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %s %s\n", label, event.DayName(day), event.FormatMinute(minute))
	return nil
}

func printSchedule(cl *protocol.Client) error {
	on, err := cl.ScheduleEnabled()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Timed operation enabled: %v\n", on)
	return nil
}

func dumpEntries(cl *protocol.Client) error {
	for i := 0; i < event.Slots; i++ {
		e, err := cl.Entry(uint8(i))
		if err != nil {
			return err
		}
		if !e.Enabled() {
			fmt.Fprintf(stdout, "%d : Not active\n", i)
			continue
		}
		fmt.Fprintf(stdout, "%d : %s\n", i, e)
	}
	return nil
}

func parseSlot(s string) (uint8, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= event.Slots {
		return 0, fmt.Errorf("invalid slot %q: want 0..%d", s, event.Slots-1)
	}
	return uint8(n), nil
}

func parseEntry(day, hour, minute, state string) (event.Entry, error) {
	d, err := event.ParseDay(day)
	if err != nil {
		return event.Entry{}, err
	}
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return event.Entry{}, fmt.Errorf("invalid hour %q", hour)
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m < 0 || m > 59 {
		return event.Entry{}, fmt.Errorf("invalid minute %q", minute)
	}

	var on bool
	switch strings.ToLower(state) {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return event.Entry{}, errors.New("state must be on or off")
	}

	return event.Entry{OnOff: on, Day: d, Minute: uint16(h*60 + m)}, nil
}
