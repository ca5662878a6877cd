// Package analytics wraps the posthog client so callers never have to care
// whether event capture is configured: with no API key every method is a no-op.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// capturer is the slice of posthog.Client the wrapper uses.
type capturer interface {
	Enqueue(posthog.Message) error
	Close() error
}

// PosthogClientWrapper guards a posthog client that may be absent.
type PosthogClientWrapper struct {
	client capturer
	logger *slog.Logger
}

// InitializePosthogClient builds the wrapper. An empty API key yields an
// uninitialized wrapper whose methods all no-op.
func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Warn("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	return &PosthogClientWrapper{client: client, logger: logger}
}

// IsInitialized reports whether events will actually be captured.
func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.client != nil
}

// Enqueue sends one capture event. Failures are logged and swallowed;
// analytics must never affect request handling.
func (w *PosthogClientWrapper) Enqueue(distinctID, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	err := w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// Close flushes pending events and releases the client.
func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.client.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to close analytics client", slog.String("error", err.Error()))
	}
}
