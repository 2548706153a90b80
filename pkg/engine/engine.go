// Package engine provides the Lisp evaluation engine for Enclose.
// It wraps zygomys in a sandboxed environment and produces a SceneGraph
// of solids and probe points from user source code.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/enclose/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a problem in the user's scene source: a parse error, an
// unknown symbol, or a builtin rejecting its arguments.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates scene source. Every call gets a fresh sandbox, so results
// depend only on the source. Starting an evaluation supersedes any that is
// still in flight.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each evaluation by d instead of DefaultTimeout.
// Non-positive durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout reports the per-evaluation limit.
func (e *Engine) Timeout() time.Duration { return e.timeout }

// Generation returns the number of evaluations started so far.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

func (e *Engine) next() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

// Evaluate runs source and returns the scene it builds. The graph's Version
// is the evaluation's generation.
//
// Problems in the source come back as EvalErrors with a nil graph. The
// error return is reserved for the evaluation itself failing: ErrTimeout,
// ErrSuperseded, ErrPanic or ctx's error.
func (e *Engine) Evaluate(ctx context.Context, source string) (*graph.SceneGraph, []EvalError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	gen := e.next()

	ch := make(chan evalResult, 1)
	go func() {
		ch <- run(source, gen)
	}()
	return e.await(ctx, ch, gen)
}

// run evaluates source in a fresh sandbox and never panics.
func run(source string, gen uint64) (res evalResult) {
	defer func() {
		if r := recover(); r != nil {
			res = evalResult{err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	g := graph.New()
	g.Version = gen
	if strings.TrimSpace(source) == "" {
		return evalResult{graph: g}
	}

	// The sandbox has no filesystem or system call builtins.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, g)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return evalResult{errors: toEvalErrors(err)}
	}
	if _, err := env.Run(); err != nil {
		return evalResult{errors: toEvalErrors(err)}
	}
	return evalResult{graph: g}
}

// lineMessages match the ways zygomys reports a source line, most specific
// first: "Error on line N: msg" and "line N: msg".
var lineMessages = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`),
	regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`),
}

// toEvalErrors converts a zygomys error, pulling out the line number when
// the message carries one.
func toEvalErrors(err error) []EvalError {
	msg := strings.TrimSpace(err.Error())
	for _, re := range lineMessages {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: msg}}
}
