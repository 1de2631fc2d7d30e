// internal/writer/types.go
package writer

// StatusPlan is the fully-built mirror plan for one device.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16 // block index; register address = BaseSlot * SlotsPerDevice
	DeviceName string
}

// endpointClient is what the writer needs from a mirror connection.
// The unit id is bound when the connection is made.
type endpointClient interface {
	WriteRegisters(addr uint16, regs []uint16) error
	WriteOutputs(addr uint16, mask uint8) error
}
