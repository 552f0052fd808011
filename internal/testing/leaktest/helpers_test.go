package leaktest

import (
	"sync"
	"testing"
	"time"
)

func TestGoroutineChecker(t *testing.T) {
	t.Run("Settles After Fan-Out", func(t *testing.T) {
		checker := NewGoroutineChecker(t)

		// Shaped like a refresh sweep: one goroutine per coordinate,
		// all joined before the check.
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(5 * time.Millisecond)
			}()
		}
		wg.Wait()

		checker.Check(0)
	})

	t.Run("Tolerates A Draining Goroutine", func(t *testing.T) {
		checker := NewGoroutineChecker(t)

		done := make(chan struct{})
		go func() {
			<-done
		}()

		checker.Check(1)
		close(done)
	})
}

func TestCheckAfter(t *testing.T) {
	CheckAfter(t, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
		}()
		wg.Wait()
	})
}
