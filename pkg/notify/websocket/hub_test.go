package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
	"github.com/robotalks/airsense/pkg/notify"
)

func dial(t *testing.T, url string) *websocket.Conn {
	deadline := time.Now().Add(5 * time.Second)
	for {
		conn, err := websocket.Dial(url, "", "http://localhost/")
		if err == nil {
			return conn
		}
		if time.Now().After(deadline) {
			t.Fatalf("dial: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func receive(t *testing.T, conn *websocket.Conn, match func(fx.Message, *msgs.Typed) bool) fx.Message {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var pkt []byte
		require.NoError(t, websocket.Message.Receive(conn, &pkt))
		msg, typed, err := msgs.DecodeMessage(pkt)
		require.NoError(t, err)
		if match(msg, typed) {
			return msg
		}
	}
}

func TestHub(t *testing.T) {
	event := &msgs.ParticulateMatter{StdPM1_0: 1, StdPM2_5: 2, StdPM10: 3}
	hub := NewHub("")
	loop := fx.NewLoop()
	loop.Interval = 5 * time.Millisecond
	loop.Add(hub,
		notify.NewNotifier(hub, notify.SourceFunc(func() (fx.Message, bool) { return event, true }), 10*time.Millisecond),
		&notify.UnsupportedCommands{})

	server := httptest.NewServer(hub)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	conn := dial(t, "ws"+strings.TrimPrefix(server.URL, "http"))
	defer conn.Close()

	ev := receive(t, conn, func(_ fx.Message, typed *msgs.Typed) bool { return typed.IsEvent() })
	require.Equal(t, event, ev)
	require.Equal(t, 1, hub.Clients())

	typed, err := msgs.TypedFrom(&msgs.StatusQuery{})
	require.NoError(t, err)
	typed.Sequence = 7
	pkt, err := typed.Encode()
	require.NoError(t, err)
	require.NoError(t, websocket.Message.Send(conn, pkt))
	reply := receive(t, conn, func(_ fx.Message, typed *msgs.Typed) bool {
		return typed.IsReply() && typed.Sequence == 7
	})
	require.Equal(t, &msgs.Status{On: true, ParticulateMatter: event}, reply)

	cancel()
	require.Equal(t, context.Canceled, <-done)
	for i := 0; hub.Clients() > 0; i++ {
		require.True(t, i < 500, "clients not disconnected")
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubListenAndShutdown(t *testing.T) {
	hub := NewHub("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hub not stopped")
	}
	require.Zero(t, hub.Clients())
}
