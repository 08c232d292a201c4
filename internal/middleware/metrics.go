package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "linkup_redis_errors_total",
	Help: "Number of Redis command errors",
}, []string{"command"})

// SimulatedRepliesScheduled counts simulated DM replies scheduled per demo
// counterpart.
var SimulatedRepliesScheduled = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "linkup_simulated_replies_scheduled_total",
	Help: "Number of simulated DM replies scheduled",
}, []string{"peer"})

// SimulatedRepliesDelivered counts simulated DM replies that actually landed.
var SimulatedRepliesDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "linkup_simulated_replies_delivered_total",
	Help: "Number of simulated DM replies delivered",
}, []string{"peer"})

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is shared: fiberprometheus registers its collectors in the
// default registry, which tolerates only one registration per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
