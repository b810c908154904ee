package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalLimiter_EvictsIdleBuckets(t *testing.T) {
	clock := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)

	limiter := newLocalLimiter(2, 60)
	limiter.now = func() time.Time { return clock }

	for i := range 100 {
		limiter.allow("limiter:203.0.113.7:agent-" + string(rune('a'+i%26)) + string(rune('a'+i/26)))
	}

	assert.Len(t, limiter.entries, 100)

	assert.True(t, limiter.allow("limiter:198.51.100.1:test"))
	assert.True(t, limiter.allow("limiter:198.51.100.1:test"))
	assert.False(t, limiter.allow("limiter:198.51.100.1:test"))

	clock = clock.Add(2 * time.Minute)

	assert.True(t, limiter.allow("limiter:198.51.100.1:test"))
	assert.Len(t, limiter.entries, 1)
}

func TestLocalLimiter_KeepsActiveBuckets(t *testing.T) {
	clock := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)

	limiter := newLocalLimiter(2, 60)
	limiter.now = func() time.Time { return clock }

	limiter.allow("busy")
	limiter.allow("quiet")

	clock = clock.Add(30 * time.Second)
	limiter.allow("busy")

	clock = clock.Add(45 * time.Second)
	limiter.allow("busy")

	_, busy := limiter.entries["busy"]
	_, quiet := limiter.entries["quiet"]

	assert.True(t, busy)
	assert.False(t, quiet)
}
