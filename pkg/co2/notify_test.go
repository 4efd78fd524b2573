package co2

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/airsense/pkg/msgs"
)

func TestSensorEvent(t *testing.T) {
	s := NewSensor(ReadSampleFunc(func() (int16, error) { return rawValid, nil }), 4, nil, DefaultRecord())
	ev, ok := s.Event()
	require.True(t, ok)
	require.Equal(t, &msgs.AirQuality{Status: msgs.AirQualityUnavailable}, ev)

	for i := 0; i < 4; i++ {
		s.Averager.PushSample(rawValid)
	}
	r := s.Reading()
	ev, ok = s.Event()
	require.True(t, ok)
	require.Equal(t, &msgs.AirQuality{
		PPM:     r.PPM,
		Status:  msgs.AirQualityValid,
		Volts:   r.Volts,
		Samples: 4,
	}, ev)
}

func TestSensorCommands(t *testing.T) {
	store := NewStore(t.TempDir())
	s := NewSensor(ReadSampleFunc(func() (int16, error) { return rawValid, nil }), 4, store, DefaultRecord())

	var status msgs.Status
	s.ReportStatus(&status)
	require.Equal(t, int32(DefaultZeroMilliVolts), status.ZeroMilliVolts)

	_, err := s.HandleCommand(context.Background(), &msgs.Switch{On: true})
	require.Equal(t, msgs.ErrUnknownCommand, err)

	_, err = s.HandleCommand(context.Background(), &msgs.Calibrate{ZeroMilliVolts: 100})
	require.Error(t, err)

	reply, err := s.HandleCommand(context.Background(), &msgs.Calibrate{ZeroMilliVolts: 3000})
	require.NoError(t, err)
	require.Equal(t, &msgs.CommandOK{}, reply)
	s.ReportStatus(&status)
	require.Equal(t, int32(3000), status.ZeroMilliVolts)
}
