package resilience

import (
	"time"
)

// FromRetryConfig builds the retry policy for store writes from its config
// knobs. Zero or negative knobs mean "unset" and leave the default in place,
// except jitter, where zero is a valid choice and only a negative value is
// unset. Jitter above 1 is capped at 1.
func FromRetryConfig(maxAttempts, initialBackoffMs, maxBackoffMs int, multiplier, jitterFraction float64) RetryConfig {
	rc := DefaultRetryConfig()
	if maxAttempts > 0 {
		rc.MaxAttempts = maxAttempts
	}
	rc.InitialBackoff = orDuration(initialBackoffMs, time.Millisecond, rc.InitialBackoff)
	rc.MaxBackoff = orDuration(maxBackoffMs, time.Millisecond, rc.MaxBackoff)
	if multiplier > 0 {
		rc.Multiplier = multiplier
	}
	switch {
	case jitterFraction > 1:
		rc.JitterFraction = 1
	case jitterFraction >= 0:
		rc.JitterFraction = jitterFraction
	}
	return rc
}

// FromBreakerConfig builds the breaker that guards the store during batch
// runs.
func FromBreakerConfig(failureThreshold, resetTimeoutSecs int) BreakerConfig {
	bc := DefaultBreakerConfig()
	if failureThreshold > 0 {
		bc.FailureThreshold = failureThreshold
	}
	bc.ResetTimeout = orDuration(resetTimeoutSecs, time.Second, bc.ResetTimeout)
	return bc
}

// orDuration scales n by unit, or returns def when n is not positive.
func orDuration(n int, unit, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * unit
}
