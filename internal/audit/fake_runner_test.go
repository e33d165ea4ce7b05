package audit

import (
	"context"
	"sync"
)

type fakeCall struct {
	Name string
	Args []string
	Env  []string
}

type fakeResult struct {
	stdout   []byte
	stderr   []byte
	exitCode int
	err      error
}

// fakeRunner records every call and answers from a queue, falling back to def.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []fakeCall
	results []fakeResult
	def     fakeResult
	block   bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, env []string) ([]byte, []byte, int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{Name: name, Args: append([]string(nil), args...), Env: env})
	res := f.def
	if len(f.results) > 0 {
		res = f.results[0]
		f.results = f.results[1:]
	}
	block := f.block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, nil, -1, ctx.Err()
	}
	return res.stdout, res.stderr, res.exitCode, res.err
}
