// internal/event/table.go
package event

import "fmt"

// Table is the persisted event table contract.
// Indices outside 0..Slots-1 are rejected by implementations.
type Table interface {
	ReadEntry(index int) (Entry, error)
	WriteEntry(index int, e Entry) error
}

// Lookup scans slots in index order and returns the first entry matching
// (day, minute). Earlier slots win over later ones.
// found is false when no slot matches.
func Lookup(t Table, day uint8, minute uint16) (e Entry, index int, found bool, err error) {
	for i := 0; i < Slots; i++ {
		cur, err := t.ReadEntry(i)
		if err != nil {
			return Entry{}, -1, false, fmt.Errorf("event lookup: slot %d: %w", i, err)
		}
		if cur.Matches(day, minute) {
			return cur, i, true, nil
		}
	}
	return Entry{}, -1, false, nil
}
