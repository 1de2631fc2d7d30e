// cmd/timerswitch/button_unix.go

//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/timerswitch/internal/board"
	"github.com/tamzrod/timerswitch/internal/device"
)

// watchButton presses the manual button once per SIGUSR1.
func watchButton(ctx context.Context, in *board.Inputs, tick time.Duration) {
	if tick <= 0 {
		tick = device.TickPeriod
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)

	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				// hold across a few ticks so the press is sampled
				in.Pulse(4 * tick)
			}
		}
	}()
}
