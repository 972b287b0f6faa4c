package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name    string
	execute func(ctx context.Context) *Result
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) Execute(ctx context.Context) *Result { return j.execute(ctx) }

func TestRunner_TracksRuns(t *testing.T) {
	runner := NewRunner(&stubJob{
		name:    "stub",
		execute: func(ctx context.Context) *Result { return &Result{Success: true, Message: "ok"} },
	})

	status := runner.Status()
	assert.Equal(t, "stub", status.Name)
	assert.Nil(t, status.LastRun)
	assert.Equal(t, 0, status.RunCount)

	result := runner.Run(context.Background())
	require.True(t, result.Success)

	runner.Run(context.Background())

	status = runner.Status()
	assert.NotNil(t, status.LastRun)
	assert.Equal(t, 2, status.RunCount)
}

func TestRunner_RecoversFromPanic(t *testing.T) {
	runner := NewRunner(&stubJob{
		name:    "panicky",
		execute: func(ctx context.Context) *Result { panic("boom") },
	})

	result := runner.Run(context.Background())

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "boom")

	// The failed run still counts.
	assert.Equal(t, 1, runner.Status().RunCount)
}

func TestRunner_NilResultTreatedAsSuccess(t *testing.T) {
	runner := NewRunner(&stubJob{
		name:    "silent",
		execute: func(ctx context.Context) *Result { return nil },
	})

	result := runner.Run(context.Background())

	require.NotNil(t, result)
	assert.True(t, result.Success)
}
