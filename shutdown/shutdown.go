// Package shutdown runs cleanup hooks in priority order when a long running
// command such as watch is interrupted.
package shutdown

import (
	"container/heap"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/flanksource/commons/logger"
)

// Lower priorities run first: stop watching, close the previews, then remove
// the output directory.
const (
	PriorityWatcher  = 0
	PriorityDefault  = 100
	PriorityPreviews = 200
	PriorityOutput   = 300
)

type Hook struct {
	label    string
	priority int
	seq      int
	fn       func()
	index    int // for heap interface
}

type HookHeap []*Hook

func (h HookHeap) Len() int { return len(h) }
func (h HookHeap) Less(i, j int) bool {
	if h[i].priority == h[j].priority {
		return h[i].seq < h[j].seq
	}
	return h[i].priority < h[j].priority
}
func (h HookHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *HookHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*Hook)
	item.index = n
	*h = append(*h, item)
}

func (h *HookHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[0 : n-1]
	return item
}

var (
	hooks    HookHeap
	hooksMux sync.Mutex
	seq      int
)

// AddHook registers a shutdown hook with default priority
func AddHook(label string, fn func()) {
	AddHookWithPriority(label, PriorityDefault, fn)
}

// AddHookWithPriority registers a shutdown hook with specific priority.
// Hooks with the same priority run in registration order.
func AddHookWithPriority(label string, priority int, fn func()) {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	seq++
	heap.Push(&hooks, &Hook{
		label:    label,
		priority: priority,
		seq:      seq,
		fn:       fn,
	})
}

// Shutdown executes all registered hooks in priority order and clears them.
// A panicking hook does not stop the others.
func Shutdown() {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	if len(hooks) == 0 {
		return
	}

	logger.Debugf("Executing %d shutdown hooks", len(hooks))
	for hooks.Len() > 0 {
		hook := heap.Pop(&hooks).(*Hook)
		logger.Debugf("Executing shutdown hook: %s (priority=%d)", hook.label, hook.priority)

		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("Panic in shutdown hook %s: %v", hook.label, r)
				}
			}()
			hook.fn()
		}()
	}
}

// Context returns a context that is cancelled on the first interrupt. A
// second interrupt exits immediately, until the returned stop is called.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			fmt.Fprintf(os.Stderr, "\nReceived %s, closing previews...\n", sig)
			cancel()
		case <-ctx.Done():
			return
		case <-done:
			return
		}
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\nForce exit\n")
			os.Exit(1)
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
		})
		cancel()
	}
}

// RunAndWait runs fn until it returns or an interrupt arrives, then runs
// the shutdown hooks.
func RunAndWait(parent context.Context, fn func(context.Context) error) error {
	ctx, stop := Context(parent)
	defer stop()
	defer Shutdown()
	return fn(ctx)
}
