package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Delay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{-5, 100 * time.Millisecond},
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{20, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Delay(tt.attempt), "attempt %d", tt.attempt)
	}

	t.Run("jitter stays in bounds", func(t *testing.T) {
		cfg := cfg
		cfg.Jitter = 0.1
		seen := map[time.Duration]bool{}
		for range 100 {
			d := cfg.Delay(0)
			seen[d] = true
			assert.GreaterOrEqual(t, d, 90*time.Millisecond)
			assert.LessOrEqual(t, d, 110*time.Millisecond)
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestConfig_MaxWait(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		// 1s + 2s + 4s, plus 10% jitter.
		assert.Equal(t, 7700*time.Millisecond, DefaultConfig().MaxWait())
	})

	t.Run("capped delays", func(t *testing.T) {
		cfg := Config{MaxAttempts: 5, InitialDelay: time.Second, MaxDelay: 3 * time.Second, Multiplier: 2}
		assert.Equal(t, 9*time.Second, cfg.MaxWait())
	})

	t.Run("disabled never waits", func(t *testing.T) {
		assert.Zero(t, Disabled().MaxWait())
		assert.Equal(t, 1, Disabled().MaxAttempts)
	})
}
