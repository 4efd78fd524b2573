package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/airsense/pkg/msgs"
	"github.com/robotalks/airsense/pkg/notify"
)

func TestParseOnOff(t *testing.T) {
	for _, arg := range []string{"on", "ON", "1", "true"} {
		on, err := ParseOnOff([]string{arg})
		require.NoError(t, err)
		require.True(t, on, arg)
	}
	for _, arg := range []string{"off", "0", "False"} {
		on, err := ParseOnOff([]string{arg})
		require.NoError(t, err)
		require.False(t, on, arg)
	}
	_, err := ParseOnOff(nil)
	require.Error(t, err)
	_, err = ParseOnOff([]string{"maybe"})
	require.Error(t, err)
}

func TestParseCalibrate(t *testing.T) {
	msg, err := ParseCalibrate([]string{"2950"})
	require.NoError(t, err)
	require.Equal(t, &msgs.Calibrate{ZeroMilliVolts: 2950}, msg)
	_, err = ParseCalibrate([]string{"-1"})
	require.Error(t, err)
	_, err = ParseCalibrate([]string{"abc"})
	require.Error(t, err)
	_, err = ParseCalibrate(nil)
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "dust/a1", FormatInfo(notify.DeviceInfo{Ref: notify.DeviceRef{Type: "dust", ID: "a1"}}))
	require.Equal(t, "co2/b2: MG811", FormatInfo(notify.DeviceInfo{
		Ref:  notify.DeviceRef{Type: "co2", ID: "b2"},
		Meta: notify.DeviceMeta{Description: "MG811"},
	}))
}
