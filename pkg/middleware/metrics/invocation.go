package metrics

import (
	"strconv"
	"time"
)

// ObserveInvocation records a call that produced an outcome, soft failures included.
func ObserveInvocation(entrypoint, function, action string, success bool, took time.Duration) {
	if function == "" {
		function = "-"
	}
	invocations.WithLabelValues(entrypoint, function, action, strconv.FormatBool(success)).Inc()
	invocationTime.WithLabelValues(entrypoint).Observe(took.Seconds())
}

// ObserveHardFailure records a call that never produced an outcome.
// kind is "decode", "encode" or "handler".
func ObserveHardFailure(entrypoint, kind string, took time.Duration) {
	hardFailures.WithLabelValues(entrypoint, kind).Inc()
	invocationTime.WithLabelValues(entrypoint).Observe(took.Seconds())
}
