// Package circuitbreaker stops calls to an Adyen endpoint that keeps failing
// at the network or server level.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by callers that refuse a request because the circuit is open.
var ErrOpen = errors.New("circuit breaker is open")

// State represents the state of the circuit breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateHalfOpen:
		return "HalfOpen"
	default:
		return "Unknown"
	}
}

const (
	defaultFailureThreshold = 3
	defaultResetTimeout     = 30 * time.Second
)

// Config tunes the breaker. Zero values fall back to defaults.
type Config struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// ResetTimeout is how long the circuit stays open before a trial request.
	ResetTimeout time.Duration
}

type endpointState struct {
	state     State
	failures  int
	openUntil time.Time
}

// CircuitBreaker tracks one circuit per key, typically an endpoint URL.
type CircuitBreaker struct {
	mu        sync.Mutex
	endpoints map[string]*endpointState
	cfg       Config
	now       func() time.Time
}

// NewCircuitBreaker creates a CircuitBreaker.
func NewCircuitBreaker(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = defaultResetTimeout
	}
	return &CircuitBreaker{
		endpoints: make(map[string]*endpointState),
		cfg:       cfg,
		now:       time.Now,
	}
}

// stateFor assumes cb.mu is held.
func (cb *CircuitBreaker) stateFor(key string) *endpointState {
	es, ok := cb.endpoints[key]
	if !ok {
		es = &endpointState{state: StateClosed}
		cb.endpoints[key] = es
	}
	return es
}

// AllowRequest reports whether a request to key may proceed. An open circuit
// whose timeout has expired moves to half-open and lets the request through.
func (cb *CircuitBreaker) AllowRequest(key string) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	es := cb.stateFor(key)
	switch es.state {
	case StateOpen:
		if cb.now().After(es.openUntil) {
			es.state = StateHalfOpen
			es.failures = 0
			return true
		}
		return false
	default:
		return true
	}
}

// RecordFailure records a failed request to key.
func (cb *CircuitBreaker) RecordFailure(key string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	es := cb.stateFor(key)
	switch es.state {
	case StateClosed:
		es.failures++
		if es.failures >= cb.cfg.FailureThreshold {
			cb.open(es)
		}
	case StateHalfOpen:
		cb.open(es)
	case StateOpen:
		// already open; the reset deadline is not extended
	}
}

func (cb *CircuitBreaker) open(es *endpointState) {
	es.state = StateOpen
	es.failures = cb.cfg.FailureThreshold
	es.openUntil = cb.now().Add(cb.cfg.ResetTimeout)
}

// RecordSuccess records a successful request to key and closes a half-open circuit.
func (cb *CircuitBreaker) RecordSuccess(key string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	es := cb.stateFor(key)
	switch es.state {
	case StateClosed, StateHalfOpen:
		es.state = StateClosed
		es.failures = 0
	case StateOpen:
		// AllowRequest gates calls while open; a late success does not close it
	}
}

// Status returns the state and consecutive failure count for key.
func (cb *CircuitBreaker) Status(key string) (State, int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	es := cb.stateFor(key)
	return es.state, es.failures
}
