package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Task is one named unit of work for Gather
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Gather executes tasks concurrently and returns their results in task
// order, one slot per task. A panic in a task is recovered, logged with its
// stack, and reported as that task's error, so one misbehaving task cannot
// take down its siblings.
func Gather(ctx context.Context, tasks []Task) []error {
	results := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)

		go func(idx int, t Task) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(ctx).Error("panic in async task",
						"task", t.Name,
						"recover", r,
						"stack", string(stack))
					results[idx] = goerr.New("panic in async task",
						goerr.V("task", t.Name),
						goerr.V("recover", r),
					)
				}
			}()

			results[idx] = t.Run(ctx)
		}(i, task)
	}
	wg.Wait()

	return results
}
