package notify

import (
	"context"

	fx "github.com/robotalks/airsense/pkg/framework"
)

// Publisher publishes events of a device.
type Publisher interface {
	Publish(context.Context, fx.Message) error
}

// Command represents a received command to be processed.
type Command interface {
	Msg() fx.Message
	Done(fx.Message) error
}

// CommandMsg wraps a Command as a Message.
type CommandMsg struct {
	Command Command
}

// NewMessage implements Message.
func (m *CommandMsg) NewMessage() fx.Message { return &CommandMsg{} }

// DeviceRef is a reference to a device.
type DeviceRef struct {
	// Type is device type, e.g. dust or co2.
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r DeviceRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates DeviceRef is valid.
func (r DeviceRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// DeviceMeta provides metadata of a device.
type DeviceMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DeviceInfo provides information of a device.
type DeviceInfo struct {
	Ref  DeviceRef
	Meta DeviceMeta
}

// Connector is used by consumers to connect to a device.
type Connector interface {
	// Discover enumerates online devices.
	Discover(context.Context) ([]DeviceInfo, error)
	// Connect connects to the specified device.
	Connect(context.Context, DeviceRef) (DeviceConn, error)
}

// DeviceConn is the connection to a device.
type DeviceConn interface {
	// DoCommand sends a command.
	DoCommand(fx.Message) CommandFuture
}

// Result represents result of a command.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture is the future of sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}
