package msgs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSerializable indicates the message is not serializable.
	ErrNotSerializable = errors.New("not serializable message")
	// ErrUnknownCommand indicates the command is not understood by the device.
	ErrUnknownCommand = errors.New("unknown command")
)

// ErrUnknownType indicates unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}
