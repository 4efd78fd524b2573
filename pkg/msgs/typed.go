package msgs

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/airsense/pkg/framework"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
	TypeIDMaskReply uint32 = 0x00008000
)

// Message Kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// SerializableMessage can be serialized over the wire.
type SerializableMessage interface {
	fx.Message
	TypeID() uint32
	Serializable() proto.Message
}

// MessageTypes maps type IDs to messages.
var MessageTypes = map[uint32]SerializableMessage{}

// Register adds messages to MessageTypes.
func Register(msgs ...SerializableMessage) {
	for _, msg := range msgs {
		MessageTypes[msg.TypeID()] = msg
	}
}

// Typed is the envelope of a message on the wire.
type Typed struct {
	TypeID   uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (p *Typed) ProtoMessage() {}

// Reset implements proto.Message.
func (p *Typed) Reset() { *p = Typed{} }

// String implements proto.Message.
func (p *Typed) String() string { return proto.CompactTextString(p) }

// TypedMsgHandler handles a decoded message.
type TypedMsgHandler interface {
	HandleTypedMsg(context.Context, fx.Message, *Typed) error
}

// HandleTypedMsgFunc is func form of TypedMsgHandler.
type HandleTypedMsgFunc func(context.Context, fx.Message, *Typed) error

// HandleTypedMsg implements TypedMsgHandler.
func (f HandleTypedMsgFunc) HandleTypedMsg(ctx context.Context, msg fx.Message, typed *Typed) error {
	return f(ctx, msg, typed)
}

// TypedFrom creates a Typed from a serializable message.
func TypedFrom(msg fx.Message) (*Typed, error) {
	s, ok := msg.(SerializableMessage)
	if !ok {
		return nil, ErrNotSerializable
	}
	data, err := proto.Marshal(s.Serializable())
	if err != nil {
		return nil, err
	}
	return &Typed{TypeID: s.TypeID(), Message: data}, nil
}

// Decode decodes the envelope into the actual message.
func (p *Typed) Decode() (fx.Message, error) {
	msgType, ok := MessageTypes[p.TypeID]
	if !ok {
		return nil, &ErrUnknownType{TypeID: p.TypeID}
	}
	msg := msgType.NewMessage()
	if err := proto.Unmarshal(p.Message, msg.(SerializableMessage).Serializable()); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode encodes the envelope to bytes.
func (p *Typed) Encode() ([]byte, error) {
	return proto.Marshal(p)
}

// Kind gets message kind from type ID.
func (p *Typed) Kind() uint32 {
	return p.TypeID & TypeIDMaskKind
}

// IsCommand determines if the message is a command or a command reply.
func (p *Typed) IsCommand() bool {
	return p.Kind() == TypeIDKindCommand
}

// IsReply determines if the message is a command reply.
func (p *Typed) IsReply() bool {
	return p.IsCommand() && p.TypeID&TypeIDMaskReply != 0
}

// IsEvent determines if the message is an event.
func (p *Typed) IsEvent() bool {
	return p.Kind() == TypeIDKindEvent
}

// DecodeTyped decodes bytes into Typed.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}

// DecodeMessage decodes bytes into Typed and the actual message.
func DecodeMessage(data []byte) (fx.Message, *Typed, error) {
	typed, err := DecodeTyped(data)
	if err != nil {
		return nil, nil, err
	}
	msg, err := typed.Decode()
	return msg, typed, err
}

// Describe formats a message for display.
func Describe(msg fx.Message) string {
	name := reflect.Indirect(reflect.ValueOf(msg)).Type().Name()
	if s, ok := msg.(SerializableMessage); ok {
		return name + " " + s.Serializable().String()
	}
	return name
}

// Format formats a message for display, in JSON if asJSON is set.
func Format(msg fx.Message, asJSON bool) (string, error) {
	if !asJSON {
		if _, ok := msg.(*CommandOK); ok {
			return "OK", nil
		}
		return Describe(msg), nil
	}
	s, ok := msg.(SerializableMessage)
	if !ok {
		return "", ErrNotSerializable
	}
	out, err := json.Marshal(s.Serializable())
	if err != nil {
		return "", err
	}
	return string(out), nil
}
