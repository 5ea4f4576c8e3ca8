package netdelay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_Waits(t *testing.T) {
	d := NewFixed(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, d.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFixed_ContextCancel(t *testing.T) {
	d := NewFixed(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := d.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFixed_ZeroDuration(t *testing.T) {
	assert.NoError(t, NewFixed(0).Wait(context.Background()))
}

func TestNone_Immediate(t *testing.T) {
	start := time.Now()
	require.NoError(t, None{}.Wait(context.Background()))
	assert.Less(t, time.Since(start), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, None{}.Wait(ctx), context.Canceled)
}
