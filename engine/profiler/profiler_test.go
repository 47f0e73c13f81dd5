package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(zap.New(core))

	start := time.Unix(1000, 0)
	clock := start
	p.now = func() time.Time { return clock }
	p.lastTime = start

	for i := 0; i < 59; i++ {
		clock = clock.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	clock = start.Add(time.Second)
	assert.True(t, p.Tick())

	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profiler", entries[0].LoggerName)
	assert.InDelta(t, 60.0, entries[0].ContextMap()["fps"], 0.001)

	clock = clock.Add(time.Second / 2)
	assert.False(t, p.Tick())
}

func TestNilLogger(t *testing.T) {
	p := NewProfiler(nil)
	p.lastTime = time.Now().Add(-2 * time.Second)
	assert.True(t, p.Tick())
}
