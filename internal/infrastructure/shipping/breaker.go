package shipping

import (
	"errors"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// NewCircuitBreaker trips once at least three requests were seen and 60% of
// them failed. Errors matching ignored are counted as successes so client
// mistakes (bad ids, unknown waybills) cannot open the circuit.
func NewCircuitBreaker(name string, logger *zap.Logger, ignored ...error) *gobreaker.CircuitBreaker[[]byte] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.IsSuccessful = func(err error) bool {
		if err == nil {
			return true
		}
		for _, target := range ignored {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	return gobreaker.NewCircuitBreaker[[]byte](st)
}
