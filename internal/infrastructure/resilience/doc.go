/*
Package resilience provides circuit breaker implementation for graceful degradation.

# Overview

This package implements the circuit breaker pattern to prevent cascading failures
and provide graceful degradation when services become unavailable or slow.

# Features

- Three-state circuit breaker (Closed, Open, Half-Open)
- Configurable failure thresholds and timeouts
- Automatic state transitions
- Concurrent request handling
- State change callbacks for monitoring
- Error classification (caller cancellations need not count as failures)
- Typed results via Call
- Thread-safe operations

# Usage

	// Create a circuit breaker for the reasoning service
	breaker := resilience.New("reasoning", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("breaker state changed", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	// Execute request through breaker
	command, err := resilience.Call(breaker, func() (string, error) {
		return client.translate(ctx, text)
	})

# States

- Closed: Normal operation, requests pass through
- Open: Service unavailable, requests fail immediately
- Half-Open: Testing if service recovered, limited requests allowed

# Pattern

The circuit breaker transitions between states based on success/failure rates:

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
