package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTimerFires(t *testing.T) {
	t.Parallel()

	timer := GetTimer(10 * time.Millisecond)
	defer PutTimer(timer)

	select {
	case <-timer.C:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestTimerReuse(t *testing.T) {
	t.Parallel()

	timer := GetTimer(time.Hour)
	PutTimer(timer)

	// A reused timer must be re-armed for the new duration, not the old one.
	reused := GetTimer(10 * time.Millisecond)
	defer PutTimer(reused)

	select {
	case <-reused.C:
	case <-time.After(time.Second):
		t.Fatal("reused timer did not fire with the new duration")
	}
}

func TestPutTimerDrainsFiredTimer(t *testing.T) {
	t.Parallel()

	timer := GetTimer(time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	PutTimer(timer)

	next := GetTimer(time.Hour)
	defer PutTimer(next)

	select {
	case <-next.C:
		t.Fatal("pooled timer leaked a stale tick")
	case <-time.After(50 * time.Millisecond):
	}

	require.NotNil(t, next)
	assert.NotNil(t, next.C)
}
