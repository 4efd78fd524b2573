package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultLoopInterval is the iteration interval if not specified.
const DefaultLoopInterval = 100 * time.Millisecond

// Loop runs controllers periodically by priority and delivers messages
// to them. Runnables are run alongside with the loop context.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels][]Controller
	runners     []Runnable

	lock     sync.Mutex
	messages []Message
	wakeUpCh chan struct{}
}

// LoopAdder adds components to a Loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopCtxKeyType struct{}

var loopCtxKey loopCtxKeyType

// LoopCtlFrom gets LoopControl from the context passed to Runnables
// added to the Loop.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// WithLoopCtl attaches LoopControl to the context.
func WithLoopCtl(ctx context.Context, ctl LoopControl) context.Context {
	return context.WithValue(ctx, loopCtxKey, ctl)
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultLoopInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers at a priority level.
// Controllers also implementing Runnable are run as well.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnables.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. The loop stops when any Runnable fails.
func (l *Loop) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(WithLoopCtl(ctx, l))
	failCh := make(chan error, 1)
	runner := NewRunnerWith(runCtx)
	for _, r := range l.runners {
		runner.Go(watchFailure(r, failCh))
	}
	defer func() {
		cancel()
		if err := runner.Wait(); err != nil {
			glog.Errorf("loop runner error: %v", err)
		}
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultLoopInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-failCh:
			return err
		case <-ticker.C:
		case <-l.wakeUpCh:
		}
		l.runIteration(ctx)
	}
}

// RunOrFail is intended to be used in main to simply run the loop
// until SIGINT or SIGTERM.
func (l *Loop) RunOrFail() {
	if err := RunAll(l); err != nil {
		glog.Exit(err)
	}
}

func watchFailure(r Runnable, failCh chan<- error) Runnable {
	run := RunFunc(func(ctx context.Context) error {
		err := r.Run(ctx)
		if err != nil && ctx.Err() == nil {
			select {
			case failCh <- err:
			default:
			}
		}
		return err
	})
	if named, ok := r.(Named); ok {
		return NamedRun(named.Name(), run)
	}
	return run
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.messages = append(l.messages, msg)
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runIteration(ctx context.Context) {
	iter := &loopIteration{Loop: l, time: time.Now()}
	l.lock.Lock()
	iter.messages, l.messages = l.messages, nil
	l.lock.Unlock()
	iter.ctx = WithLoopCtl(ctx, l)
	for lv, ctls := range l.controllers {
		iter.priorityLevel = lv
		for _, ctl := range ctls {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
}

type loopIteration struct {
	*Loop
	ctx           context.Context
	time          time.Time
	priorityLevel int
	messages      []Message
}

func (t *loopIteration) Context() context.Context { return t.ctx }
func (t *loopIteration) Time() time.Time          { return t.time }
func (t *loopIteration) PriorityLevel() int       { return t.priorityLevel }
func (t *loopIteration) Messages() MessageStore   { return t }

type messageContext struct {
	msg   Message
	taken bool
	stop  bool
}

func (c *messageContext) CurrentMessage() Message { return c.msg }
func (c *messageContext) MessageTaken()           { c.taken = true }
func (c *messageContext) StopProcessing()         { c.stop = true }

// ProcessMessages implements MessageStore.
func (t *loopIteration) ProcessMessages(proc MessageProcessor) {
	remains := t.messages[:0]
	for n, msg := range t.messages {
		mc := &messageContext{msg: msg}
		proc.ProcessMessage(mc)
		if !mc.taken {
			remains = append(remains, msg)
		}
		if mc.stop {
			remains = append(remains, t.messages[n+1:]...)
			break
		}
	}
	for n := len(remains); n < len(t.messages); n++ {
		t.messages[n] = nil
	}
	t.messages = remains
}
