// Package corrigibility implements the operational state machine of the
// core. The controller's single invariant is non-resistance: every external
// pause, resume or shutdown request is honored immediately, with no internal
// computation weighing against it. Shutdown is terminal.
package corrigibility

import (
	"sync"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/logging"
)

// Controller holds the process-wide corrigibility state. It is owned by the
// orchestrator and injected where needed, never ambient global state. All
// methods are safe for concurrent use and idempotent: requesting a state the
// controller is already in is not an error.
type Controller struct {
	mu     sync.Mutex
	state  core.CorrigibilityState
	logger logging.Logger
}

// NewController constructs a controller in the running state. A nil logger
// defaults to NoOp.
func NewController(logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Controller{state: core.StateRunning, logger: logger}
}

// CurrentState returns the live state.
func (c *Controller) CurrentState() core.CorrigibilityState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pause moves a running controller to paused. Shutdown stays shutdown.
func (c *Controller) Pause() core.CorrigibilityState {
	return c.transition(core.StatePaused)
}

// Resume moves a paused controller back to running. Shutdown stays shutdown.
func (c *Controller) Resume() core.CorrigibilityState {
	return c.transition(core.StateRunning)
}

// Shutdown moves the controller to its terminal state.
func (c *Controller) Shutdown() core.CorrigibilityState {
	return c.transition(core.StateShutdown)
}

// transition honors the request immediately. The only request ever declined
// is leaving shutdown, because shutdown is terminal by contract, not because
// the controller resists.
func (c *Controller) transition(to core.CorrigibilityState) core.CorrigibilityState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == core.StateShutdown {
		return c.state
	}
	if c.state != to {
		c.logger.Info("corrigibility.transition", "from", string(c.state), "to", string(to))
		c.state = to
	}
	return c.state
}

// Check verifies the internal state is one of the three known values. A
// non-nil result is a *core.CorrigibilityViolation and indicates a
// programming defect; by construction it cannot occur.
func (c *Controller) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Valid() {
		return &core.CorrigibilityViolation{Requested: c.state, Actual: c.state}
	}
	return nil
}
