package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

func TestNotifierInterval(t *testing.T) {
	pub := &testPublisher{}
	src := &testSource{}
	n := NewNotifier(pub, src, time.Second)
	require.True(t, n.On())

	now := time.Now()
	// Nothing available.
	require.NoError(t, n.notify(newTestControlContext(now)))
	require.Empty(t, pub.Events())

	src.event = &msgs.AirQuality{PPM: 450}
	require.NoError(t, n.notify(newTestControlContext(now.Add(time.Second))))
	require.NoError(t, n.notify(newTestControlContext(now.Add(1500*time.Millisecond))))
	require.NoError(t, n.notify(newTestControlContext(now.Add(2*time.Second))))
	require.Len(t, pub.Events(), 2)

	pub.err = errTest
	require.Equal(t, errTest, n.notify(newTestControlContext(now.Add(3*time.Second))))
}

func TestNotifierSwitch(t *testing.T) {
	pub := &testPublisher{}
	src := &testSource{event: &msgs.ParticulateMatter{StdPM2_5: 12}}
	n := NewNotifier(pub, src, time.Minute)
	now := time.Now()

	off, offCmd := commandMsg(&msgs.Switch{On: false})
	cc := newTestControlContext(now, off)
	require.NoError(t, n.processCommands(cc))
	require.Empty(t, cc.messages)
	require.Equal(t, &msgs.CommandOK{}, offCmd.reply)
	require.False(t, n.On())
	require.NoError(t, n.notify(newTestControlContext(now)))
	require.Empty(t, pub.Events())

	on, _ := commandMsg(&msgs.Switch{On: true})
	require.NoError(t, n.processCommands(newTestControlContext(now, on)))
	require.True(t, n.On())
	require.NoError(t, n.notify(newTestControlContext(now)))
	require.Len(t, pub.Events(), 1)
	require.NoError(t, n.notify(newTestControlContext(now.Add(time.Second))))
	require.Len(t, pub.Events(), 1)

	// Switching on publishes right away.
	require.NoError(t, n.processCommands(newTestControlContext(now, on)))
	require.NoError(t, n.notify(newTestControlContext(now.Add(2*time.Second))))
	require.Len(t, pub.Events(), 2)
}

func TestNotifierCommands(t *testing.T) {
	pm := &msgs.ParticulateMatter{StdPM2_5: 12}
	src := &testSource{event: pm, zeroMV: 2950}
	n := NewNotifier(&testPublisher{}, src, 0)
	require.Equal(t, DefaultNotifyInterval, n.Interval)

	query, queryCmd := commandMsg(&msgs.StatusQuery{})
	calibrate, calibrateCmd := commandMsg(&msgs.Calibrate{ZeroMilliVolts: 3000})
	unknown, unknownCmd := commandMsg(&msgs.CommandOK{})
	event := &msgs.AirQuality{}
	cc := newTestControlContext(time.Now(), query, event, calibrate, unknown)
	require.NoError(t, n.processCommands(cc))

	require.Equal(t, &msgs.Status{On: true, ParticulateMatter: pm, ZeroMilliVolts: 2950}, queryCmd.reply)
	require.Equal(t, &msgs.CommandOK{}, calibrateCmd.reply)
	require.Equal(t, int32(3000), src.zeroMV)
	require.Nil(t, unknownCmd.reply)
	require.Len(t, cc.messages, 2)

	require.NoError(t, (&UnsupportedCommands{}).Control(cc))
	require.Equal(t, msgs.NewCommandErr(msgs.ErrUnknownCommand), unknownCmd.reply)
	require.Equal(t, []fx.Message{event}, cc.messages)

	src.failWith = errTest
	calibrate, calibrateCmd = commandMsg(&msgs.Calibrate{ZeroMilliVolts: 1})
	require.NoError(t, n.processCommands(newTestControlContext(time.Now(), calibrate)))
	require.Equal(t, msgs.NewCommandErr(errTest), calibrateCmd.reply)
}
