// internal/protocol/opcodes.go
package protocol

// Command opcodes. One byte selects the action; multi-byte commands are
// followed by their payload bytes. Any other byte is ignored by the device.
const (
	OpOutputsOff  byte = 0x01 // reply: none
	OpOutputsOn   byte = 0x02 // reply: none
	OpGetOutputs  byte = 0x03 // reply: 1 byte output mask
	OpSetDay      byte = 0x04 // payload: day
	OpSetTime     byte = 0x05 // payload: minute-hi, minute-lo
	OpSetEntry    byte = 0x06 // payload: index, on_off, minute-hi, minute-lo, day
	OpScheduleOff byte = 0x07 // reply: none
	OpScheduleOn  byte = 0x08 // reply: none
	OpGetTime     byte = 0x09 // reply: day, minute-hi, minute-lo
	OpGetEntry    byte = 0x0A // payload: index; reply: on_off, day, minute-hi, minute-lo
	OpGetSchedule byte = 0x0B // reply: 0 or 1
	OpGetInputs   byte = 0x0C // reply: raw input port byte
)

// Link parameters: 9600 baud, 8 data bits, no parity, 1 stop bit.
const (
	BaudRate = 9600
	DataBits = 8
	StopBits = 1
	Parity   = "N"
)
