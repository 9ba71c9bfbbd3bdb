package repositories

import (
	"time"

	"github.com/sony/gobreaker"

	"weather-forecasting/pkg/logger"
)

const (
	breakerOpenTimeout = 30 * time.Second
	breakerMinRequests = 3
	breakerFailRatio   = 0.6
)

// newBreaker trips after mostly-failing traffic and lets one trial call through after
// breakerOpenTimeout. Calls are never retried.
func newBreaker(name string, l *logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Warning("circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
}

func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}
