package framework

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
)

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// ErrForcedExit is returned by Runner.Wait when stop is requested twice.
var ErrForcedExit = errors.New("forced exit")

// Runner runs multiple Runnables and collects errors.
type Runner struct {
	Context context.Context

	count  int
	errCh  chan error
	exitCh chan struct{}
}

// NewRunner creates a runner with a background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a runner with the specified context.
func NewRunnerWith(ctx context.Context) *Runner {
	return &Runner{
		Context: ctx,
		errCh:   make(chan error, 1),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals cancels the context on SIGINT or SIGTERM.
// The second signal makes Wait return immediately.
func (r *Runner) HandleSignals() *Runner {
	ctx, cancel := context.WithCancel(r.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	r.Context = ctx
	go func() {
		<-sigCh
		glog.Info("stop requested")
		cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go spawns Runnables with the runner context.
func (r *Runner) Go(runners ...Runnable) *Runner {
	for _, runner := range runners {
		name := strconv.Itoa(r.count)
		if named, ok := runner.(Named); ok {
			name = named.Name()
		}
		r.count++
		go func(runner Runnable, name string) {
			glog.V(4).Infof("Runner[%s] started", name)
			err := runner.Run(r.Context)
			glog.V(4).Infof("Runner[%s] stopped: %v", name, err)
			r.errCh <- err
		}(runner, name)
	}
	return r
}

// Wait waits until all Runnables stop and aggregates errors.
// context.Canceled is not considered an error.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for ; r.count > 0; r.count-- {
		select {
		case <-r.exitCh:
			return ErrForcedExit
		case err := <-r.errCh:
			if err != context.Canceled {
				errs.Add(err)
			}
		}
	}
	return errs.Aggregate()
}

// RunAll runs Runnables until they all stop.
// It's intended to be used in main.
func RunAll(runners ...Runnable) error {
	return NewRunner().HandleSignals().Go(runners...).Wait()
}
