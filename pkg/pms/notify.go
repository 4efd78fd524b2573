package pms

import (
	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

// EventOf converts a Measurement into the event message.
func EventOf(m Measurement) *msgs.ParticulateMatter {
	ev := &msgs.ParticulateMatter{
		StdPM1_0: uint32(m.Standard.PM1_0),
		StdPM2_5: uint32(m.Standard.PM2_5),
		StdPM10:  uint32(m.Standard.PM10),
		AtmPM1_0: uint32(m.Atmospheric.PM1_0),
		AtmPM2_5: uint32(m.Atmospheric.PM2_5),
		AtmPM10:  uint32(m.Atmospheric.PM10),
	}
	if m.HasCounts {
		ev.HasCounts = true
		ev.Over0_3 = uint32(m.Counts.Over0_3)
		ev.Over0_5 = uint32(m.Counts.Over0_5)
		ev.Over1_0 = uint32(m.Counts.Over1_0)
		ev.Over2_5 = uint32(m.Counts.Over2_5)
		ev.Over5_0 = uint32(m.Counts.Over5_0)
		ev.Over10 = uint32(m.Counts.Over10)
	}
	return ev
}

// Event implements notify.Source. Nothing is available before the first
// accepted frame.
func (s *Sensor) Event() (fx.Message, bool) {
	m, ok := s.Latest()
	if !ok {
		return nil, false
	}
	return EventOf(m), true
}

// ReportStatus implements notify.StatusReporter.
func (s *Sensor) ReportStatus(status *msgs.Status) {
	stats := s.Decoder().Stats()
	status.Accepted, status.Rejected = stats.Accepted, stats.Rejected()
}

// AddToLoop implements LoopAdder.
func (s *Sensor) AddToLoop(l *fx.Loop) {
	l.AddRunnable(s)
}
