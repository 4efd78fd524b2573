package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/airsense/pkg/framework"
)

// ParticulateMatter is the event of a dust sensor measurement.
// Concentrations are in ug/m3, counts are per 0.1L of air.
type ParticulateMatter struct {
	StdPM1_0  uint32 `protobuf:"varint,1,opt,name=std_pm1_0,proto3" json:"std_pm1_0,omitempty"`
	StdPM2_5  uint32 `protobuf:"varint,2,opt,name=std_pm2_5,proto3" json:"std_pm2_5,omitempty"`
	StdPM10   uint32 `protobuf:"varint,3,opt,name=std_pm10,proto3" json:"std_pm10,omitempty"`
	AtmPM1_0  uint32 `protobuf:"varint,4,opt,name=atm_pm1_0,proto3" json:"atm_pm1_0,omitempty"`
	AtmPM2_5  uint32 `protobuf:"varint,5,opt,name=atm_pm2_5,proto3" json:"atm_pm2_5,omitempty"`
	AtmPM10   uint32 `protobuf:"varint,6,opt,name=atm_pm10,proto3" json:"atm_pm10,omitempty"`
	Over0_3   uint32 `protobuf:"varint,7,opt,name=over0_3,proto3" json:"over0_3,omitempty"`
	Over0_5   uint32 `protobuf:"varint,8,opt,name=over0_5,proto3" json:"over0_5,omitempty"`
	Over1_0   uint32 `protobuf:"varint,9,opt,name=over1_0,proto3" json:"over1_0,omitempty"`
	Over2_5   uint32 `protobuf:"varint,10,opt,name=over2_5,proto3" json:"over2_5,omitempty"`
	Over5_0   uint32 `protobuf:"varint,11,opt,name=over5_0,proto3" json:"over5_0,omitempty"`
	Over10    uint32 `protobuf:"varint,12,opt,name=over10,proto3" json:"over10,omitempty"`
	HasCounts bool   `protobuf:"varint,13,opt,name=has_counts,json=hasCounts,proto3" json:"has_counts,omitempty"`
}

// NewMessage implements Message.
func (m *ParticulateMatter) NewMessage() fx.Message { return &ParticulateMatter{} }

// TypeID implements SerializableMessage.
func (m *ParticulateMatter) TypeID() uint32 { return ParticulateMatterTypeID }

// Serializable implements SerializableMessage.
func (m *ParticulateMatter) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ParticulateMatter) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ParticulateMatter) Reset() { *m = ParticulateMatter{} }

// String implements proto.Message.
func (m *ParticulateMatter) String() string { return proto.CompactTextString(m) }

// AirQuality status values.
const (
	AirQualityUnavailable int32 = iota
	AirQualityValid
	AirQualitySaturated
	AirQualityBelowRange
)

// AirQuality is the event of a CO2 reading.
type AirQuality struct {
	PPM     float64 `protobuf:"fixed64,1,opt,name=ppm,proto3" json:"ppm,omitempty"`
	Status  int32   `protobuf:"varint,2,opt,name=status,proto3" json:"status,omitempty"`
	Volts   float64 `protobuf:"fixed64,3,opt,name=volts,proto3" json:"volts,omitempty"`
	Samples uint32  `protobuf:"varint,4,opt,name=samples,proto3" json:"samples,omitempty"`
}

// NewMessage implements Message.
func (m *AirQuality) NewMessage() fx.Message { return &AirQuality{} }

// TypeID implements SerializableMessage.
func (m *AirQuality) TypeID() uint32 { return AirQualityTypeID }

// Serializable implements SerializableMessage.
func (m *AirQuality) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *AirQuality) ProtoMessage() {}

// Reset implements proto.Message.
func (m *AirQuality) Reset() { *m = AirQuality{} }

// String implements proto.Message.
func (m *AirQuality) String() string { return proto.CompactTextString(m) }

// Calibrate sets the zero point of a CO2 sensor: the amplified output in mV
// measured in fresh air.
type Calibrate struct {
	ZeroMilliVolts int32 `protobuf:"varint,1,opt,name=zero_mv,json=zeroMv,proto3" json:"zero_mv,omitempty"`
}

// NewMessage implements Message.
func (m *Calibrate) NewMessage() fx.Message { return &Calibrate{} }

// TypeID implements SerializableMessage.
func (m *Calibrate) TypeID() uint32 { return CalibrateTypeID }

// Serializable implements SerializableMessage.
func (m *Calibrate) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *Calibrate) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Calibrate) Reset() { *m = Calibrate{} }

// String implements proto.Message.
func (m *Calibrate) String() string { return proto.CompactTextString(m) }
