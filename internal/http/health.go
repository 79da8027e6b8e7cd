package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/circuitbreaker"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker is a dependency that can report its health: the Mongo and
// Postgres stores, the Redis cache and the loaded tariff set.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f HealthCheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// InfoFunc reports a readiness detail that never fails the probe, such as
// the active tariff version.
type InfoFunc func(ctx context.Context) interface{}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	info            map[string]InfoFunc
	timeout         time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		info:            make(map[string]InfoFunc),
		timeout:         healthCheckTimeout,
	}
}

// RegisterChecker registers a dependency probed by the readiness endpoint.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports cb's state; an open circuit fails readiness.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// RegisterInfo adds a detail to the readiness body.
func (h *HealthHandler) RegisterInfo(name string, fn InfoFunc) {
	h.info[name] = fn
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint. Checkers run concurrently,
// each bounded by the probe timeout.
// @Summary     Readiness probe
// @Description Returns OK if all dependencies are healthy and a tariff set is loaded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		ready  = true
		checks = make(map[string]interface{}, len(h.checkers)+len(h.circuitBreakers))
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			err := checker.HealthCheck(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				checks[name] = err.Error()
				ready = false
				return
			}
			checks[name] = "ok"
		}(name, checker)
	}
	wg.Wait()

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			ready = false
		}
	}
	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	body := gin.H{"status": "ok", "checks": checks}
	if len(h.info) > 0 {
		info := make(map[string]interface{}, len(h.info))
		for name, fn := range h.info {
			if v := fn(ctx); v != nil {
				info[name] = v
			}
		}
		body["info"] = info
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
