// internal/status/constants.go
package status

// Device Status Block layout constants.
// These values define the mirror layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of holding registers per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotOutput holds the 8-bit output mask.
const SlotOutput = 0

// SlotDay holds the clock day (1..7).
const SlotDay = 1

// SlotMinute holds the clock minute of day (0..1439).
const SlotMinute = 2

// SlotSchedule holds 1 while schedule mode is enabled.
const SlotSchedule = 3

// SlotInput holds the raw input port byte.
const SlotInput = 4

// SlotPersisted counts committed table writes (saturating).
const SlotPersisted = 5

// SlotFaults counts transmit, lookup and persist failures (saturating).
const SlotFaults = 6

// LiveSlots is the number of slots carrying live state (0..LiveSlots-1).
const LiveSlots = 7

// ---- RESERVED RANGE ----

// Slots 7–10 are reserved for future use.
const SlotReservedStart = 7
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- OUTPUT COILS ----

// OutputCoils is the number of coils mirroring the output bank, one per channel.
const OutputCoils = 8
