// Package report carries warnings out of the elaborator core. Warnings
// are fire-and-forget: sinks never block, never fail, and never influence
// control flow in the caller.
package report

import "go.uber.org/zap"

// Sink receives categorized warnings.
type Sink interface {
	Warn(category, message string)
}

// ZapSink logs warnings through a zap logger.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps a zap logger. A nil logger is replaced with a no-op
// logger so the sink keeps its never-fails contract.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// Warn implements Sink.
func (s *ZapSink) Warn(category, message string) {
	s.logger.Warn(message, zap.String("category", category))
}

// Event is one captured warning.
type Event struct {
	Category string
	Message  string
}

// Capture is a Sink that records every warning, for tests.
type Capture struct {
	Events []Event
}

// Warn implements Sink.
func (c *Capture) Warn(category, message string) {
	c.Events = append(c.Events, Event{Category: category, Message: message})
}

// Count returns how many warnings of a category were recorded.
func (c *Capture) Count(category string) int {
	n := 0
	for _, e := range c.Events {
		if e.Category == category {
			n++
		}
	}
	return n
}
