package tutor

import (
	"context"
	"sync"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/intent"
)

type grammarFunc func(ctx context.Context, text string) ([]capability.Correction, error)

func (f grammarFunc) Check(ctx context.Context, text string) ([]capability.Correction, error) {
	return f(ctx, text)
}

type textFunc func(ctx context.Context, text string) (string, error)

func (f textFunc) Define(ctx context.Context, w string) (string, error)    { return f(ctx, w) }
func (f textFunc) Speak(ctx context.Context, t string) (string, error)     { return f(ctx, t) }
func (f textFunc) Translate(ctx context.Context, t string) (string, error) { return f(ctx, t) }
func (f textFunc) Explain(ctx context.Context, t string) (string, error)   { return f(ctx, t) }
func (f textFunc) Generate(ctx context.Context, p string) (string, error)  { return f(ctx, p) }

func returns(out string) textFunc {
	return func(context.Context, string) (string, error) { return out, nil }
}

func fails(err error) textFunc {
	return func(context.Context, string) (string, error) { return "", err }
}

// recorder captures the argument of the last call.
type recorder struct {
	mu   sync.Mutex
	args []string
	out  string
}

func (r *recorder) fn() textFunc {
	return func(_ context.Context, s string) (string, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.args = append(r.args, s)
		return r.out, nil
	}
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.args) == 0 {
		return ""
	}
	return r.args[len(r.args)-1]
}

// countingRouter wraps the default classifier and counts invocations.
type countingRouter struct {
	inner *intent.Classifier
	calls int
}

func (c *countingRouter) Match(text string) intent.Match {
	c.calls++
	return c.inner.Match(text)
}

// fixedRouter sends every message to one handler.
type fixedRouter intent.Handler

func (r fixedRouter) Match(string) intent.Match {
	return intent.Match{Handler: intent.Handler(r)}
}
