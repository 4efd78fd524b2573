package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/airsense/pkg/framework"
)

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupDevice  uint32 = 0x00010000
	GroupDust    uint32 = 0x00020000
	GroupCO2     uint32 = 0x00030000
)

// TypeIDs
const (
	CommandOKTypeID         uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID        uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	SwitchTypeID            uint32 = GroupDevice | 0x0000
	StatusQueryTypeID       uint32 = GroupDevice | 0x0001
	StatusTypeID            uint32 = StatusQueryTypeID | TypeIDMaskReply
	ParticulateMatterTypeID uint32 = TypeIDKindEvent | GroupDust | 0x0000
	AirQualityTypeID        uint32 = TypeIDKindEvent | GroupCO2 | 0x0000
	CalibrateTypeID         uint32 = GroupCO2 | 0x0000
)

func init() {
	Register(
		(*CommandOK)(nil),
		(*CommandErr)(nil),
		(*Switch)(nil),
		(*StatusQuery)(nil),
		(*Status)(nil),
		(*ParticulateMatter)(nil),
		(*AirQuality)(nil),
		(*Calibrate)(nil),
	)
}

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() fx.Message { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// Serializable implements SerializableMessage.
func (m *CommandOK) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CommandOK) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandOK) Reset() { *m = CommandOK{} }

// String implements proto.Message.
func (m *CommandOK) String() string { return proto.CompactTextString(m) }

// CommandErr is the generic reply representing command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{Message: err.Error()}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() fx.Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Serializable implements SerializableMessage.
func (m *CommandErr) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *CommandErr) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// Switch turns notifications of a device on or off.
type Switch struct {
	On bool `protobuf:"varint,1,opt,name=on,proto3" json:"on,omitempty"`
}

// NewMessage implements Message.
func (m *Switch) NewMessage() fx.Message { return &Switch{} }

// TypeID implements SerializableMessage.
func (m *Switch) TypeID() uint32 { return SwitchTypeID }

// Serializable implements SerializableMessage.
func (m *Switch) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *Switch) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Switch) Reset() { *m = Switch{} }

// String implements proto.Message.
func (m *Switch) String() string { return proto.CompactTextString(m) }

// StatusQuery queries the status of a device.
type StatusQuery struct {
}

// NewMessage implements Message.
func (m *StatusQuery) NewMessage() fx.Message { return &StatusQuery{} }

// TypeID implements SerializableMessage.
func (m *StatusQuery) TypeID() uint32 { return StatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *StatusQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *StatusQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatusQuery) Reset() { *m = StatusQuery{} }

// String implements proto.Message.
func (m *StatusQuery) String() string { return proto.CompactTextString(m) }

// Status is the reply of StatusQuery and Calibrate.
type Status struct {
	On                bool               `protobuf:"varint,1,opt,name=on,proto3" json:"on,omitempty"`
	ParticulateMatter *ParticulateMatter `protobuf:"bytes,2,opt,name=particulate_matter,json=particulateMatter,proto3" json:"particulate_matter,omitempty"`
	AirQuality        *AirQuality        `protobuf:"bytes,3,opt,name=air_quality,json=airQuality,proto3" json:"air_quality,omitempty"`
	// Accepted and Rejected are frame counters of a dust sensor.
	Accepted uint64 `protobuf:"varint,4,opt,name=accepted,proto3" json:"accepted,omitempty"`
	Rejected uint64 `protobuf:"varint,5,opt,name=rejected,proto3" json:"rejected,omitempty"`
	// ZeroMilliVolts is the calibrated zero point of a CO2 sensor.
	ZeroMilliVolts int32 `protobuf:"varint,6,opt,name=zero_mv,json=zeroMv,proto3" json:"zero_mv,omitempty"`
}

// NewMessage implements Message.
func (m *Status) NewMessage() fx.Message { return &Status{} }

// TypeID implements SerializableMessage.
func (m *Status) TypeID() uint32 { return StatusTypeID }

// Serializable implements SerializableMessage.
func (m *Status) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *Status) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Status) Reset() { *m = Status{} }

// String implements proto.Message.
func (m *Status) String() string { return proto.CompactTextString(m) }

// SetEvent fills the latest event into the status.
func (m *Status) SetEvent(msg fx.Message) {
	switch ev := msg.(type) {
	case *ParticulateMatter:
		m.ParticulateMatter = ev
	case *AirQuality:
		m.AirQuality = ev
	}
}
