package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for every one of them.
// With collectAll the failures are joined in task order; otherwise the error
// of the first task to fail is returned.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "web-1", Func: upWeb1},
//	    {Name: "web-2", Func: upWeb2},
//	}
//	if err := RunParallel(ctx, tasks, false); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task, collectAll bool) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		index int
		err   error
	}

	resultChan := make(chan result, len(tasks))

	for i, task := range tasks {
		go func() {
			resultChan <- result{index: i, err: task.Func(ctx)}
		}()
	}

	errs := make([]error, len(tasks))
	var firstError error
	for range len(tasks) {
		res := <-resultChan
		if res.err == nil {
			continue
		}
		wrapped := fmt.Errorf("%s: %w", tasks[res.index].Name, res.err)
		errs[res.index] = wrapped
		if firstError == nil {
			firstError = wrapped
		}
	}

	if collectAll {
		return errors.Join(errs...)
	}
	return firstError
}
