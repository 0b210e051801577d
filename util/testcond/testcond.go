package testcond

import (
	"fmt"
	"time"
)

// WaitForCondition evaluates eval immediately and then on every interval tick
// until it returns true or timeout elapses.
func WaitForCondition(eval func() bool, interval time.Duration, timeout time.Duration) error {
	if eval() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	evaluations := 1
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("condition not met after %d evaluations in %s", evaluations, timeout)
		case <-ticker.C:
			evaluations++
			if eval() {
				return nil
			}
		}
	}
}
