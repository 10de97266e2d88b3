// Package testing provides a Runner test double so sshwrap-dependent
// code can be exercised without spawning real ssh/scp processes.
package testing

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Call records one Runner invocation.
type Call struct {
	Argv  []string
	Stdin []byte
	Env   []string
}

// Command returns the argv joined with spaces, which is what response
// patterns match against.
func (c Call) Command() string {
	return strings.Join(c.Argv, " ")
}

// Response is a canned process outcome.
type Response struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Err      error
	// Block makes the call wait for the context deadline instead of
	// returning, simulating a hung ssh connection.
	Block bool
}

// FakeRunner implements sshwrap.Runner. Responses are keyed by exact
// match or regexp over the space-joined argv or the stdin payload (the
// remote command text travels on stdin); unmatched calls get the
// Default response (exit 0, empty output unless changed).
type FakeRunner struct {
	mu       sync.Mutex
	calls    []Call
	exact    map[string]Response
	patterns []patternResponse
	Default  Response
}

type patternResponse struct {
	re   *regexp.Regexp
	resp Response
}

// NewFakeRunner creates an empty fake runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{exact: make(map[string]Response)}
}

// Respond registers a canned response for an exact argv string.
func (f *FakeRunner) Respond(command string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exact[command] = resp
}

// RespondPattern registers a canned response for a regexp over the
// joined argv. Patterns are tried in registration order.
func (f *FakeRunner) RespondPattern(pattern string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, patternResponse{regexp.MustCompile(pattern), resp})
}

// Run records the call and returns the matching canned response.
func (f *FakeRunner) Run(ctx context.Context, argv []string, stdin []byte, env []string) (stdout, stderr []byte, exitCode int, err error) {
	f.mu.Lock()
	call := Call{Argv: append([]string(nil), argv...), Stdin: append([]byte(nil), stdin...), Env: env}
	f.calls = append(f.calls, call)
	payload := string(stdin)
	resp, ok := f.exact[call.Command()]
	if !ok && payload != "" {
		resp, ok = f.exact[payload]
	}
	if !ok {
		for _, pr := range f.patterns {
			if pr.re.MatchString(call.Command()) || (payload != "" && pr.re.MatchString(payload)) {
				resp, ok = pr.resp, true
				break
			}
		}
	}
	if !ok {
		resp = f.Default
	}
	f.mu.Unlock()

	if resp.Block {
		select {
		case <-ctx.Done():
			return nil, nil, -1, nil
		case <-time.After(time.Hour):
		}
	}
	return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Err
}

// Calls returns a copy of the recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// LastCall returns the most recent invocation, or a zero Call.
func (f *FakeRunner) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Call{}
	}
	return f.calls[len(f.calls)-1]
}
