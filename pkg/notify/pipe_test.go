package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

func waitResult(t *testing.T, f CommandFuture) Result {
	select {
	case r := <-f.ResultChan():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("command timeout")
	}
	return Result{}
}

func TestEndpointConn(t *testing.T) {
	devRW, clientRW := newPacketPipes()
	event := &msgs.AirQuality{PPM: 500, Status: msgs.AirQualityValid, Samples: 1024}

	ep := NewEndpoint(devRW)
	n := NewNotifier(ep, SourceFunc(func() (fx.Message, bool) { return event, true }), 10*time.Millisecond)
	devLoop := fx.NewLoop()
	devLoop.Interval = 5 * time.Millisecond
	devLoop.Add(ep, n, &UnsupportedCommands{})

	var conn Conn
	conn.Init(clientRW)
	conn.Expiration = 100 * time.Millisecond
	events := make(chan fx.Message, 16)
	clientLoop := fx.NewLoop()
	clientLoop.Interval = 5 * time.Millisecond
	clientLoop.Add(&conn)
	clientLoop.AddController(fx.PrLvNotify, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
			mc.MessageTaken()
			select {
			case events <- mc.CurrentMessage():
			default:
			}
		}))
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	devDone, clientDone := make(chan error, 1), make(chan error, 1)
	go func() { devDone <- devLoop.Run(ctx) }()
	go func() { clientDone <- clientLoop.Run(ctx) }()

	select {
	case ev := <-events:
		require.Equal(t, event, ev)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	r := waitResult(t, conn.DoCommand(&msgs.StatusQuery{}))
	require.NoError(t, r.Err)
	require.Equal(t, &msgs.Status{On: true, AirQuality: event}, r.Msg)

	r = waitResult(t, conn.DoCommand(&msgs.Switch{On: false}))
	require.NoError(t, r.Err)
	require.Equal(t, &msgs.CommandOK{}, r.Msg)
	require.False(t, n.On())

	r = waitResult(t, conn.DoCommand(&msgs.Calibrate{ZeroMilliVolts: 3000}))
	require.Equal(t, msgs.NewCommandErr(msgs.ErrUnknownCommand), r.Err)

	// Events can't be sent as commands.
	r = waitResult(t, conn.DoCommand(event))
	require.Error(t, r.Err)

	// Replies are ignored by the device, the command expires.
	r = waitResult(t, conn.DoCommand(&msgs.CommandOK{}))
	require.Equal(t, context.DeadlineExceeded, r.Err)

	cancel()
	require.Equal(t, context.Canceled, <-devDone)
	require.Equal(t, context.Canceled, <-clientDone)
}

func TestPublisherMux(t *testing.T) {
	pub1, pub2 := &testPublisher{}, &testPublisher{err: errTest}
	var mux PublisherMux
	mux.Add(pub1, pub2)
	event := &msgs.ParticulateMatter{StdPM10: 3}
	err := mux.Publish(context.Background(), event)
	require.Equal(t, errTest.Error(), err.Error())
	require.Len(t, pub1.Events(), 1)
	require.Len(t, pub2.Events(), 1)
}
