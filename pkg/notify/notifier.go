package notify

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

// Source provides the latest event of a device.
type Source interface {
	// Event returns the event to publish, ok is false if nothing is available.
	Event() (msg fx.Message, ok bool)
}

// SourceFunc is func type of Source.
type SourceFunc func() (fx.Message, bool)

// Event implements Source.
func (f SourceFunc) Event() (fx.Message, bool) {
	return f()
}

// CommandHandler is optionally implemented by a Source for device
// specific commands. msgs.ErrUnknownCommand leaves the command to
// other controllers.
type CommandHandler interface {
	HandleCommand(ctx context.Context, cmd fx.Message) (reply fx.Message, err error)
}

// StatusReporter is optionally implemented by a Source to fill device
// specific status.
type StatusReporter interface {
	ReportStatus(*msgs.Status)
}

// DefaultNotifyInterval is used when the interval is not specified.
const DefaultNotifyInterval = time.Second

// Notifier publishes the event of Source every Interval while switched on,
// and processes Switch and StatusQuery commands.
type Notifier struct {
	Publisher Publisher
	Source    Source
	Interval  time.Duration

	off  int32
	next time.Time
}

// NewNotifier creates a Notifier, switched on.
func NewNotifier(pub Publisher, src Source, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = DefaultNotifyInterval
	}
	return &Notifier{Publisher: pub, Source: src, Interval: interval}
}

// On tells if notifications are switched on.
func (n *Notifier) On() bool {
	return atomic.LoadInt32(&n.off) == 0
}

// Switch turns notifications on or off.
func (n *Notifier) Switch(on bool) {
	var off int32
	if !on {
		off = 1
	}
	if atomic.SwapInt32(&n.off, off) != off {
		glog.Infof("notification switched on=%v", on)
	}
}

// Status collects the current status.
func (n *Notifier) Status() *msgs.Status {
	status := &msgs.Status{On: n.On()}
	if ev, ok := n.Source.Event(); ok {
		status.SetEvent(ev)
	}
	if r, ok := n.Source.(StatusReporter); ok {
		r.ReportStatus(status)
	}
	return status
}

// AddToLoop implements LoopAdder.
func (n *Notifier) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvCommand, fx.ControlFunc(n.processCommands))
	l.AddController(fx.PrLvNotify, fx.ControlFunc(n.notify))
}

func (n *Notifier) processCommands(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		cmdMsg, ok := mc.CurrentMessage().(*CommandMsg)
		if !ok {
			return
		}
		reply, err := n.handleCommand(cc.Context(), cmdMsg.Command.Msg())
		if err == msgs.ErrUnknownCommand {
			return
		}
		mc.MessageTaken()
		if err != nil {
			reply = msgs.NewCommandErr(err)
		}
		errs.Add(cmdMsg.Command.Done(reply))
	}))
	return errs.Aggregate()
}

func (n *Notifier) handleCommand(ctx context.Context, cmd fx.Message) (fx.Message, error) {
	switch m := cmd.(type) {
	case *msgs.Switch:
		n.Switch(m.On)
		n.next = time.Time{}
		return &msgs.CommandOK{}, nil
	case *msgs.StatusQuery:
		return n.Status(), nil
	}
	if h, ok := n.Source.(CommandHandler); ok {
		return h.HandleCommand(ctx, cmd)
	}
	return nil, msgs.ErrUnknownCommand
}

func (n *Notifier) notify(cc fx.ControlContext) error {
	if !n.On() || cc.Time().Before(n.next) {
		return nil
	}
	n.next = cc.Time().Add(n.Interval)
	ev, ok := n.Source.Event()
	if !ok {
		return nil
	}
	if glog.V(2) {
		glog.Infof("notify %s", msgs.Describe(ev))
	}
	return n.Publisher.Publish(cc.Context(), ev)
}
