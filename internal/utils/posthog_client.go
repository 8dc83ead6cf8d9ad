package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// eventSink is the subset of posthog.Client the wrapper needs.
type eventSink interface {
	Enqueue(posthog.Message) error
	Close() error
}

// PosthogClient wraps the posthog client so callers never have to care
// whether analytics is configured. With an empty API key every method is
// a no-op.
type PosthogClient struct {
	sink   eventSink
	logger *slog.Logger
}

// NewPosthogClient builds the wrapper. An empty apiKey yields a disabled
// client rather than an error.
func NewPosthogClient(apiKey string, logger *slog.Logger) *PosthogClient {
	if apiKey == "" {
		logger.Warn("POSTHOG_API_KEY is empty, analytics disabled")
		return &PosthogClient{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Warn("Failed to initialize posthog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClient{logger: logger}
	}
	return &PosthogClient{sink: client, logger: logger}
}

func (w *PosthogClient) Enabled() bool {
	return w != nil && w.sink != nil
}

// Enqueue captures a single event for the given user. Disabled clients
// drop the event silently.
func (w *PosthogClient) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.Enabled() {
		return
	}
	err := w.sink.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClient) Close() {
	if !w.Enabled() {
		return
	}
	if err := w.sink.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
