// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Mirror is the Modbus TCP connection a timer switch publishes its status
// block and output coils through. The unit id is fixed for its lifetime.
type Mirror struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
	broken  bool
}

type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// Dial prepares the connection. The socket is opened by the first write and
// reopened after a failure, so an endpoint that is down at startup only
// costs failed writes.
func Dial(cfg Config) (*Mirror, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("mirror: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	return &Mirror{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handler.Close()
}

// WriteRegisters writes regs as holding registers starting at addr.
func (m *Mirror) WriteRegisters(addr uint16, regs []uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(regs) == 0 {
		return nil
	}
	_, err := m.client.WriteMultipleRegisters(addr, uint16(len(regs)), registerBytes(regs))
	return m.settle("registers", err)
}

// WriteOutputs writes the 8-bit output mask as eight coils starting at addr.
// Bit 0 of the mask lands on the first coil.
func (m *Mirror) WriteOutputs(addr uint16, mask uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.client.WriteMultipleCoils(addr, 8, []byte{mask})
	return m.settle("outputs", err)
}

// settle drops the connection after a failed request so the next one
// redials instead of reading a stale response off the old socket.
func (m *Mirror) settle(what string, err error) error {
	if err == nil {
		m.broken = false
		return nil
	}
	if !m.broken {
		_ = m.handler.Close()
		m.broken = true
	}
	return fmt.Errorf("mirror: write %s to %s: %w", what, m.handler.Address, err)
}

func registerBytes(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
