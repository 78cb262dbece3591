package assist

// State represents where an enrichment request is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateSucceeded
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Call tracks a single enrichment request so callers can derive control
// state (e.g. disabling Save while analysis runs) from it deterministically.
// Requests are not cancellable; a second trigger is prevented by checking
// Busy before issuing one.
type Call struct {
	state State
	err   error
}

// Begin marks the request in flight and clears any previous error.
func (c *Call) Begin() {
	c.state = StateInFlight
	c.err = nil
}

// Succeed marks the request complete.
func (c *Call) Succeed() {
	c.state = StateSucceeded
	c.err = nil
}

// Fail marks the request failed with its error.
func (c *Call) Fail(err error) {
	c.state = StateFailed
	c.err = err
}

// Busy reports whether a request is currently in flight.
func (c *Call) Busy() bool { return c.state == StateInFlight }

// State returns the current lifecycle state.
func (c *Call) State() State { return c.state }

// Err returns the error from the last failed request, if any.
func (c *Call) Err() error { return c.err }
