package co2

import (
	"context"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

// EventOf converts a Reading into the event message.
func EventOf(r Reading) *msgs.AirQuality {
	return &msgs.AirQuality{
		PPM:     r.PPM,
		Status:  int32(r.Status),
		Volts:   r.Volts,
		Samples: uint32(r.Samples),
	}
}

// Event implements notify.Source. An unavailable reading is still
// published so consumers see the sensor is not sampling.
func (s *Sensor) Event() (fx.Message, bool) {
	return EventOf(s.Reading()), true
}

// ReportStatus implements notify.StatusReporter.
func (s *Sensor) ReportStatus(status *msgs.Status) {
	status.ZeroMilliVolts = int32(s.Record().ZeroMilliVolts)
}

// HandleCommand implements notify.CommandHandler.
func (s *Sensor) HandleCommand(ctx context.Context, cmd fx.Message) (fx.Message, error) {
	m, ok := cmd.(*msgs.Calibrate)
	if !ok {
		return nil, msgs.ErrUnknownCommand
	}
	if _, err := s.Calibrate(int(m.ZeroMilliVolts)); err != nil {
		return nil, err
	}
	return &msgs.CommandOK{}, nil
}

// AddToLoop implements LoopAdder.
func (s *Sensor) AddToLoop(l *fx.Loop) {
	l.AddRunnable(s)
}
