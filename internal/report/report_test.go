package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCapture_RecordsAndCounts(t *testing.T) {
	c := &Capture{}
	c.Warn("large-number", "first")
	c.Warn("config", "second")
	c.Warn("large-number", "third")

	assert.Len(t, c.Events, 3)
	assert.Equal(t, Event{Category: "large-number", Message: "first"}, c.Events[0])
	assert.Equal(t, 2, c.Count("large-number"))
	assert.Equal(t, 1, c.Count("config"))
	assert.Equal(t, 0, c.Count("absent"))
}

func TestZapSink_Logs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewZapSink(zap.New(core))
	s.Warn("large-number", "interpreting 5000")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "interpreting 5000", entries[0].Message)
	assert.Equal(t, "large-number", entries[0].ContextMap()["category"])
}

func TestZapSink_NilLoggerIsSafe(t *testing.T) {
	s := NewZapSink(nil)
	assert.NotPanics(t, func() { s.Warn("any", "message") })
}
