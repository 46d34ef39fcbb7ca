// Package credential tracks whether a usable API key is available and gates
// recipe generation on it.
package credential

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fridgechef/internal/config"
)

// State is the gate's view of the credential.
type State int

const (
	// StateUnknown is the initial state, pending the startup probe.
	StateUnknown State = iota
	StateAbsent
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePresent:
		return "present"
	default:
		return "unknown"
	}
}

// TestResult is the connectivity indicator, tracked independently of State.
// It informs the status display and never gates anything.
type TestResult int

const (
	TestUntested TestResult = iota
	TestPassed
	TestFailed
)

func (r TestResult) String() string {
	switch r {
	case TestPassed:
		return "passed"
	case TestFailed:
		return "failed"
	default:
		return "untested"
	}
}

// Picker is the host-provided key selection capability. It may be absent
// entirely, in which case the gate degrades gracefully.
type Picker interface {
	HasSelectedKey(ctx context.Context) (bool, error)
	OpenSelector(ctx context.Context) error
}

// Tester runs a lightweight connectivity check against the backend.
type Tester func(ctx context.Context) bool

// ErrUnsupported is returned when no key picker capability exists.
var ErrUnsupported = errors.New("key selection is not supported in this environment")

const reconcileTimeout = 30 * time.Second

// Gate is the credential state machine.
type Gate struct {
	mu     sync.Mutex
	state  State
	test   TestResult
	picker Picker
	cred   *config.Cell
	tester Tester
	wg     sync.WaitGroup
}

// NewGate wires the gate to the credential cell, an optional picker (nil
// means the environment has no selection capability), and an optional
// connectivity tester.
func NewGate(cred *config.Cell, picker Picker, tester Tester) *Gate {
	return &Gate{
		state:  StateUnknown,
		test:   TestUntested,
		picker: picker,
		cred:   cred,
		tester: tester,
	}
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) ConnectivityResult() TestResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.test
}

// Probe resolves the initial Unknown state: Present if the host reports a
// pre-selected key or the credential cell holds a usable value, else Absent.
func (g *Gate) Probe(ctx context.Context) State {
	present := g.cred.Usable()
	if !present && g.picker != nil {
		selected, err := g.picker.HasSelectedKey(ctx)
		if err != nil {
			slog.WarnContext(ctx, "key picker probe failed", "error", err)
		}
		present = present || selected
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if present {
		g.state = StatePresent
	} else {
		g.state = StateAbsent
	}
	slog.InfoContext(ctx, "credential probe complete", "state", g.state.String())
	return g.state
}

// RequestKeySelection invokes the host picker and optimistically flips the
// gate to Present as soon as the invocation returns, without verifying the
// picker's outcome. Waiting for verification races against environment
// re-probes; instead the async connectivity test reconciles afterwards, so
// there is a short window where the displayed state can be ahead of reality.
func (g *Gate) RequestKeySelection(ctx context.Context) error {
	if g.picker == nil {
		return ErrUnsupported
	}

	if err := g.picker.OpenSelector(ctx); err != nil {
		// the picker's own outcome is trusted either way
		slog.WarnContext(ctx, "key selector reported an error", "error", err)
	}
	g.cred.Refresh()

	g.mu.Lock()
	g.state = StatePresent
	g.mu.Unlock()

	if g.tester != nil {
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
			defer cancel()
			g.RunConnectivityTest(ctx)
		}()
	}
	return nil
}

// RunConnectivityTest runs the tester synchronously and records the result.
func (g *Gate) RunConnectivityTest(ctx context.Context) TestResult {
	result := TestFailed
	if g.tester != nil && g.tester(ctx) {
		result = TestPassed
	}

	g.mu.Lock()
	g.test = result
	g.mu.Unlock()
	slog.InfoContext(ctx, "connectivity test finished", "result", result.String())
	return result
}

// MarkAbsent records that a backend call failed with a credential-shaped
// error; the user has to re-authenticate.
func (g *Gate) MarkAbsent() {
	g.mu.Lock()
	g.state = StateAbsent
	g.mu.Unlock()
}

// Wait blocks until background reconciliation finishes. Used by shutdown and
// tests.
func (g *Gate) Wait() {
	g.wg.Wait()
}
