package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/enclose/pkg/graph"
)

// DefaultTimeout is the limit for a single evaluation.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when an evaluation runs past the engine timeout.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned when a newer evaluation started first.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
	// ErrPanic wraps a panic raised inside the interpreter.
	ErrPanic = errors.New("panic during evaluation")
)

type evalResult struct {
	graph  *graph.SceneGraph
	errors []EvalError
	err    error
}

// await waits for generation gen to report on ch. An abandoned evaluation
// keeps running; its result lands in the buffered channel and is dropped.
func (e *Engine) await(ctx context.Context, ch <-chan evalResult, gen uint64) (*graph.SceneGraph, []EvalError, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	select {
	case res := <-ch:
		if gen != e.Generation() {
			return nil, nil, ErrSuperseded
		}
		return res.graph, res.errors, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
		}
		return nil, nil, ctx.Err()
	}
}
