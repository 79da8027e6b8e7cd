// Package circuitbreaker guards calls to the rate table stores.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned without calling the guarded function while the
// circuit is open or while every half-open probe slot is taken.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the position of a breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Config holds circuit breaker configuration.
type Config struct {
	// Name identifies the guarded store in logs and metrics.
	Name string
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	// SuccessThreshold consecutive half-open successes close it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
	// MaxProbes bounds concurrent calls while half-open. Zero means
	// SuccessThreshold.
	MaxProbes int
	// IsFailure decides whether an error counts against the circuit.
	// Nil counts every error except context cancellation.
	IsFailure func(error) bool
	// OnStateChange runs with the breaker locked and must not call back into it.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig suits a single database dependency.
func DefaultConfig() Config {
	return Config{
		Name:             "circuit-breaker",
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// CircuitBreaker stops calling a dependency after repeated failures and
// lets a few probes through once Timeout has passed.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	probes      int
	rejected    int64
	lastFailure time.Time
}

// New creates a closed circuit breaker.
func New(cfg Config) *CircuitBreaker {
	cfg.FailureThreshold = max(cfg.FailureThreshold, 1)
	cfg.SuccessThreshold = max(cfg.SuccessThreshold, 1)
	if cfg.MaxProbes <= 0 {
		cfg.MaxProbes = cfg.SuccessThreshold
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return !errors.Is(err, context.Canceled) }
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute runs fn unless the circuit rejects the call.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn()
	cb.record(probe, err == nil || !cb.cfg.IsFailure(err))
	return err
}

// admit reports whether the call is a half-open probe, or ErrCircuitOpen.
func (cb *CircuitBreaker) admit() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
			cb.rejected++
			return false, ErrCircuitOpen
		}
		cb.successes, cb.probes = 0, 0
		cb.setState(StateHalfOpen)
	}

	if cb.state != StateHalfOpen {
		return false, nil
	}
	if cb.probes >= cb.cfg.MaxProbes {
		cb.rejected++
		return false, ErrCircuitOpen
	}
	cb.probes++
	return true, nil
}

func (cb *CircuitBreaker) record(probe, ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe && cb.probes > 0 {
		cb.probes--
	}

	if !ok {
		cb.failures++
		cb.lastFailure = cb.now()
		// a failed probe reopens at once
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.failures = max(cb.failures, cb.cfg.FailureThreshold)
			cb.setState(StateOpen)
		}
		return
	}

	cb.failures = 0
	if cb.state != StateHalfOpen {
		cb.successes = 0
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.successes = 0
		cb.setState(StateClosed)
	}
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to

	event := log.Info()
	if to == StateOpen {
		event = log.Warn().Int("failure_count", cb.failures)
	}
	event.Str("circuit_breaker", cb.cfg.Name).
		Stringer("from", from).
		Stringer("to", to).
		Msg("Circuit breaker state changed")

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time view of a circuit breaker.
type Stats struct {
	Name         string
	State        string
	FailureCount int
	SuccessCount int
	Rejected     int64
	LastFailure  time.Time
	IsHealthy    bool
}

// GetStats returns a snapshot of the breaker counters.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		Rejected:     cb.rejected,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
