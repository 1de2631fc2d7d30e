// internal/serialport/serialport.go
package serialport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"

	"github.com/tamzrod/timerswitch/internal/protocol"
)

// Config is the minimal link config. Framing is fixed at 8N1.
type Config struct {
	Address  string
	BaudRate int
	Timeout  time.Duration // read timeout; bounds each blocking read
}

// Open opens the serial link.
func Open(cfg Config) (serial.Port, error) {
	if cfg.Address == "" {
		return nil, errors.New("serialport: address required")
	}
	baud := cfg.BaudRate
	if baud <= 0 {
		baud = protocol.BaudRate
	}

	p, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: baud,
		DataBits: protocol.DataBits,
		StopBits: protocol.StopBits,
		Parity:   protocol.Parity,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Address, err)
	}
	return p, nil
}

// Pump reads from src and hands each received byte to handle, in arrival
// order. Read timeouts are not errors; they only give ctx a chance to be
// observed. Returns on ctx cancellation or on the first read failure.
func Pump(ctx context.Context, src io.Reader, handle func(byte)) error {
	buf := make([]byte, 64)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.Read(buf)
		for i := 0; i < n; i++ {
			handle(buf[i])
		}
		if err == nil {
			continue
		}
		if errors.Is(err, serial.ErrTimeout) {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("serialport: read: %w", err)
	}
}
