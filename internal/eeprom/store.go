// internal/eeprom/store.go
package eeprom

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/tamzrod/timerswitch/internal/event"
)

// Size is the byte size of the persisted table image.
const Size = event.Slots * event.SlotSize

// ErrIndex is returned for slot indices outside the table.
var ErrIndex = errors.New("eeprom: slot index out of range")

// Store is the byte-addressable medium holding the event table.
// It implements event.Table. Each slot is written in place.
type Store struct {
	mu   sync.Mutex
	f    afero.File
	path string
}

// Open opens (or creates) the table image at path on fs.
// A missing or short image is zero-extended, so fresh slots read back inert.
func Open(fs afero.Fs, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("eeprom: path required")
	}

	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("eeprom: open %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("eeprom: stat %s: %w", path, err)
	}
	if st.Size() < Size {
		if err := f.Truncate(Size); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("eeprom: extend %s: %w", path, err)
		}
	}

	return &Store{f: f, path: path}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// ReadEntry reads slot index.
func (s *Store) ReadEntry(index int) (event.Entry, error) {
	if index < 0 || index >= event.Slots {
		return event.Entry{}, ErrIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return event.Entry{}, os.ErrClosed
	}

	var raw [event.SlotSize]byte
	if _, err := s.f.ReadAt(raw[:], int64(index*event.SlotSize)); err != nil {
		return event.Entry{}, fmt.Errorf("eeprom: read slot %d: %w", index, err)
	}
	return event.Unpack(raw), nil
}

// WriteEntry overwrites slot index. No read-back verification is done.
func (s *Store) WriteEntry(index int, e event.Entry) error {
	if index < 0 || index >= event.Slots {
		return ErrIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return os.ErrClosed
	}

	raw := event.Pack(e)
	if _, err := s.f.WriteAt(raw[:], int64(index*event.SlotSize)); err != nil {
		return fmt.Errorf("eeprom: write slot %d: %w", index, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("eeprom: sync %s: %w", s.path, err)
	}
	return nil
}
