package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunnerWait(t *testing.T) {
	errFailed := errors.New("failed")
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx).Go(
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		NamedRun("failing", RunFunc(func(ctx context.Context) error {
			cancel()
			return errFailed
		})),
		RunFunc(func(ctx context.Context) error {
			return nil
		}),
	)
	err := r.Wait()
	require.Error(t, err)
	require.Equal(t, []error{errFailed}, err.(*AggregatedError).Errors)
}

func TestRunnerNoError(t *testing.T) {
	require.NoError(t, NewRunner().Wait())
	require.NoError(t, NewRunner().Go(RunFunc(func(ctx context.Context) error {
		return context.Canceled
	})).Wait())
}
