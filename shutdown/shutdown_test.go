package shutdown

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsHooksInPriorityOrder(t *testing.T) {
	var order []string
	AddHookWithPriority("output", PriorityOutput, func() { order = append(order, "output") })
	AddHookWithPriority("previews", PriorityPreviews, func() { order = append(order, "previews") })
	AddHook("first default", func() { order = append(order, "default-1") })
	AddHookWithPriority("watcher", PriorityWatcher, func() { order = append(order, "watcher") })
	AddHook("second default", func() { order = append(order, "default-2") })

	Shutdown()

	assert.Equal(t, []string{"watcher", "default-1", "default-2", "previews", "output"}, order)
}

func TestShutdownSurvivesPanickingHook(t *testing.T) {
	ran := false
	AddHookWithPriority("boom", PriorityWatcher, func() { panic("boom") })
	AddHook("after", func() { ran = true })

	assert.NotPanics(t, Shutdown)
	assert.True(t, ran)
}

func TestShutdownClearsHooks(t *testing.T) {
	count := 0
	AddHook("once", func() { count++ })
	Shutdown()
	Shutdown()
	assert.Equal(t, 1, count)
}

func TestRunAndWait(t *testing.T) {
	closed := false
	AddHook("close", func() { closed = true })

	err := RunAndWait(context.Background(), func(ctx context.Context) error {
		assert.NoError(t, ctx.Err())
		return errors.New("done")
	})

	assert.EqualError(t, err, "done")
	assert.True(t, closed)
}
