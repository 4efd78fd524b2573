package msgs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/airsense/pkg/framework"
)

type plainMessage struct{}

func (m *plainMessage) NewMessage() fx.Message { return &plainMessage{} }

func TestTypedEnvelope(t *testing.T) {
	status := &Status{
		On: true,
		ParticulateMatter: &ParticulateMatter{
			StdPM1_0: 5, StdPM2_5: 8, StdPM10: 10,
			AtmPM1_0: 6, AtmPM2_5: 9, AtmPM10: 11,
			Over0_3: 1000, Over10: 1, HasCounts: true,
		},
		AirQuality: &AirQuality{PPM: 812.5, Status: AirQualityValid, Volts: 0.33, Samples: 1024},
		Accepted:   42,
		Rejected:   3,
	}
	typed, err := TypedFrom(status)
	require.NoError(t, err)
	require.Equal(t, StatusTypeID, typed.TypeID)
	require.True(t, typed.IsCommand())
	require.True(t, typed.IsReply())
	require.False(t, typed.IsEvent())
	typed.Sequence = 7

	data, err := typed.Encode()
	require.NoError(t, err)
	msg, decoded, err := DecodeMessage(data)
	require.NoError(t, err)
	require.Equal(t, uint32(7), decoded.Sequence)
	require.Equal(t, status, msg)
}

func TestTypedKinds(t *testing.T) {
	testCases := []struct {
		msg                   SerializableMessage
		command, reply, event bool
	}{
		{&Switch{On: true}, true, false, false},
		{&StatusQuery{}, true, false, false},
		{&Calibrate{ZeroMilliVolts: 2950}, true, false, false},
		{&CommandOK{}, true, true, false},
		{NewCommandErr(errors.New("failed")), true, true, false},
		{&ParticulateMatter{StdPM2_5: 12}, false, false, true},
		{&AirQuality{PPM: 400}, false, false, true},
	}
	for _, tc := range testCases {
		typed, err := TypedFrom(tc.msg)
		require.NoError(t, err)
		require.Equal(t, tc.command, typed.IsCommand(), Describe(tc.msg))
		require.Equal(t, tc.reply, typed.IsReply(), Describe(tc.msg))
		require.Equal(t, tc.event, typed.IsEvent(), Describe(tc.msg))
		msg, err := typed.Decode()
		require.NoError(t, err)
		require.Equal(t, tc.msg, msg)
	}
}

func TestTypedErrors(t *testing.T) {
	_, err := TypedFrom(&plainMessage{})
	require.Equal(t, ErrNotSerializable, err)

	typed := &Typed{TypeID: GroupCO2 | 0x7fff}
	_, err = typed.Decode()
	require.Equal(t, &ErrUnknownType{TypeID: GroupCO2 | 0x7fff}, err)
	require.Equal(t, "unknown type: 37fff", err.Error())

	_, err = DecodeTyped([]byte{0xff})
	require.Error(t, err)
}

func TestCommandErr(t *testing.T) {
	err := NewCommandErr(ErrUnknownCommand)
	require.Equal(t, ErrUnknownCommand.Error(), err.Error())
}

func TestStatusSetEvent(t *testing.T) {
	var status Status
	pm, aq := &ParticulateMatter{StdPM10: 1}, &AirQuality{PPM: 500}
	status.SetEvent(pm)
	status.SetEvent(aq)
	status.SetEvent(&Switch{})
	require.Equal(t, pm, status.ParticulateMatter)
	require.Equal(t, aq, status.AirQuality)
}

func TestDescribe(t *testing.T) {
	require.Contains(t, Describe(&Switch{On: true}), "Switch")
	require.Equal(t, "plainMessage", Describe(&plainMessage{}))
}

func TestFormat(t *testing.T) {
	out, err := Format(&CommandOK{}, false)
	require.NoError(t, err)
	require.Equal(t, "OK", out)
	out, err = Format(&Switch{On: true}, true)
	require.NoError(t, err)
	require.Equal(t, `{"on":true}`, out)
	out, err = Format(&Switch{On: true}, false)
	require.NoError(t, err)
	require.Contains(t, out, "Switch")
}
