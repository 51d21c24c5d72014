package client

import "time"

// backoffDelay returns the wait before retry attempt number attempt
// (1-based). The delay starts at minDelay, doubles per attempt, and never
// exceeds maxDelay.
func backoffDelay(minDelay, maxDelay time.Duration, attempt int) time.Duration {
	delay := minDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}

	if delay > maxDelay {
		return maxDelay
	}

	return delay
}
