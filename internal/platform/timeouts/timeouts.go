// Package timeouts holds the durations shared by every TaskMate command.
package timeouts

import "time"

const (
	// BackendRequest caps one round trip to the TaskMate REST backend,
	// retries included.
	BackendRequest = 10 * time.Second

	// ReadHeader bounds how long servers wait for request headers.
	ReadHeader = 5 * time.Second

	// Shutdown bounds the graceful drain of in-flight requests.
	Shutdown = 5 * time.Second

	TelemetryShutdown = 5 * time.Second
)
