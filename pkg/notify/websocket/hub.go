// Package websocket streams device events to websocket clients and accepts
// commands from them.
package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/notify"
)

// Hub accepts websocket connections and broadcasts published events to
// all of them. Each connection is a notify.Endpoint in the Loop the Hub is
// added to, so commands from clients are processed by the same controllers
// as those from MQTT.
type Hub struct {
	// Addr is the listen address, empty to only serve via ServeHTTP.
	Addr string

	lock    sync.RWMutex
	ctx     context.Context
	clients map[*notify.Endpoint]struct{}
}

// NewHub creates a Hub.
func NewHub(addr string) *Hub {
	return &Hub{Addr: addr, clients: make(map[*notify.Endpoint]struct{})}
}

// Publish implements notify.Publisher. Clients failed to receive
// are disconnected.
func (h *Hub) Publish(ctx context.Context, msg fx.Message) error {
	h.lock.RLock()
	clients := make([]*notify.Endpoint, 0, len(h.clients))
	for ep := range h.clients {
		clients = append(clients, ep)
	}
	h.lock.RUnlock()
	for _, ep := range clients {
		if err := ep.Publish(ctx, msg); err != nil {
			glog.Warningf("websocket client dropped: %v", err)
			ep.Close()
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// AddToLoop implements LoopAdder.
func (h *Hub) AddToLoop(l *fx.Loop) {
	l.AddRunnable(h)
}

// Run implements Runnable.
func (h *Hub) Run(ctx context.Context) error {
	h.lock.Lock()
	h.ctx = ctx
	h.lock.Unlock()
	defer h.closeAll()

	if h.Addr == "" {
		<-ctx.Done()
		return ctx.Err()
	}
	server := &http.Server{Addr: h.Addr, Handler: h}
	errCh := make(chan error, 1)
	go func() {
		glog.Infof("websocket listening on %s", h.Addr)
		errCh <- server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		glog.Warningf("websocket shutdown: %v", err)
	}
	return ctx.Err()
}

// ServeHTTP implements http.Handler. Connections are refused until the
// Hub is running in a Loop.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.lock.RLock()
	ctx := h.ctx
	h.lock.RUnlock()
	if ctx == nil || ctx.Err() != nil {
		http.Error(w, "not running", http.StatusServiceUnavailable)
		return
	}
	server := websocket.Server{Handler: func(conn *websocket.Conn) {
		conn.PayloadType = websocket.BinaryFrame
		h.serve(ctx, notify.NewEndpoint(New(conn)))
	}}
	server.ServeHTTP(w, r)
}

func (h *Hub) serve(ctx context.Context, ep *notify.Endpoint) {
	h.lock.Lock()
	h.clients[ep] = struct{}{}
	h.lock.Unlock()
	glog.V(1).Info("websocket client connected")
	err := ep.Run(ctx)
	h.lock.Lock()
	delete(h.clients, ep)
	h.lock.Unlock()
	glog.V(1).Infof("websocket client disconnected: %v", err)
}

func (h *Hub) closeAll() {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for ep := range h.clients {
		ep.Close()
	}
}
