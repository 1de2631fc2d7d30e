// cmd/timerswitch/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/tamzrod/timerswitch/internal/board"
	"github.com/tamzrod/timerswitch/internal/config"
	"github.com/tamzrod/timerswitch/internal/device"
	"github.com/tamzrod/timerswitch/internal/eeprom"
	"github.com/tamzrod/timerswitch/internal/poller"
	"github.com/tamzrod/timerswitch/internal/serialport"
	"github.com/tamzrod/timerswitch/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: timerswitch <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	ts := cfg.TimerSwitch

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Event table medium
	// --------------------

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(filepath.Dir(ts.Storage.Path), 0o755); err != nil {
		log.Fatalf("storage dir failed (path=%s): %v", ts.Storage.Path, err)
	}
	table, err := eeprom.Open(fs, ts.Storage.Path)
	if err != nil {
		log.Fatalf("storage open failed: %v", err)
	}
	defer table.Close()

	// --------------------
	// Serial link
	// --------------------

	port, err := serialport.Open(serialport.Config{
		Address:  ts.Serial.Port,
		BaudRate: ts.Serial.Baud,
		Timeout:  time.Duration(ts.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("serial open failed: %v", err)
	}
	defer port.Close()

	// --------------------
	// Device
	// --------------------

	inputs := board.NewInputs(*ts.Input.Initial)
	outputs := board.NewOutputs(ts.Name)

	dev, err := device.New(device.Config{
		Table:       table,
		Output:      outputs,
		Input:       inputs,
		TX:          port,
		StartDay:    ts.Clock.StartDay,
		StartMinute: ts.Clock.StartMinute,
	})
	if err != nil {
		log.Fatalf("device build failed: %v", err)
	}

	tick := time.Duration(ts.Clock.TickUs) * time.Microsecond

	go dev.RunClock(ctx, tick)
	go func() {
		if err := serialport.Pump(ctx, port, dev.Receive); err != nil && ctx.Err() == nil {
			log.Printf("serial receive stopped (port=%s): %v", ts.Serial.Port, err)
			stop()
		}
	}()
	go func() { _ = dev.Run(ctx) }()

	watchButton(ctx, inputs, tick)

	// --------------------
	// Status mirror (optional)
	// --------------------

	if ts.Mirror != nil {
		startMirror(ctx, ts.Name, *ts.Mirror, dev)
	}

	log.Printf("running (device=%s port=%s storage=%s)", ts.Name, ts.Serial.Port, ts.Storage.Path)

	<-ctx.Done()

	s := dev.Snapshot()
	log.Printf("stopped (device=%s persisted=%d faults=%d)", ts.Name, s.Persisted, s.Faults)
}

// startMirror wires poller -> status writer. Only a bad mirror config is
// fatal; the endpoint is dialled on first write, so an unreachable endpoint
// shows up as logged write failures and never stops the device.
func startMirror(ctx context.Context, name string, m config.MirrorConfig, dev *device.Device) {
	p, err := poller.Build(name, m, dev)
	if err != nil {
		log.Fatalf("mirror poller build failed: %v", err)
	}

	sw, closeWriter, err := writer.Build(m)
	if err != nil {
		log.Fatalf("mirror writer build failed (endpoint=%s): %v", m.Endpoint, err)
	}

	out := make(chan poller.PollResult)

	// Orchestrator (single writer goroutine)
	go func() {
		defer closeWriter()
		for {
			select {
			case <-ctx.Done():
				return
			case res := <-out:
				if err := sw.WriteStatus(res.Status); err != nil {
					log.Printf("status write failed (device=%s): %v", res.DeviceID, err)
				}
			}
		}
	}()

	// poller producer
	go p.Run(ctx, out)
}
