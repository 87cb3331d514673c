package asyncsign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsWorkResult(t *testing.T) {
	out, err := Run(context.Background(), func() (string, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestRunPropagatesWorkError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), func() (string, error) {
		return "", boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRunRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, func() (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "too late", nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoolRunsAllWorks(t *testing.T) {
	works := []func() (string, error){
		func() (string, error) { return "a", nil },
		func() (string, error) { return "b", nil },
		func() (string, error) { return "", errors.New("c failed") },
	}

	results, errs := Pool(context.Background(), 2, works)
	require.Len(t, results, 3)
	require.Len(t, errs, 3)
	assert.Equal(t, "a", results[0])
	assert.Equal(t, "b", results[1])
	assert.Error(t, errs[2])
}
