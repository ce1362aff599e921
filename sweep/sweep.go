// Package sweep reclaims memory held by expired entries.
//
// Expiry is lazy: a stale entry is already a miss. The sweeper only frees
// the bytes sooner than the next insert-time eviction would.
package sweep

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sanshu/iconcache/store"
)

/*
Sweeper runs one background goroutine that clears expired entries every
interval. Close stops it and waits for it to exit.
*/
type Sweeper struct {
	store    *store.Store
	interval time.Duration
	logger   *slog.Logger

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// Start launches a sweeper. interval must be positive.
func Start(s *store.Store, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Sweeper{
		store:    s,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *Sweeper) run() {
	defer w.wg.Done()

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			w.Sweep()
		case <-w.stop:
			return
		}
	}
}

// Sweep clears expired entries once and returns how many it removed.
func (w *Sweeper) Sweep() int {
	n, _ := w.store.Clear(store.Expired)
	if n > 0 {
		w.logger.Debug("swept expired entries", "removed", n)
	}
	return n
}

// Close is safe to call more than once.
func (w *Sweeper) Close() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
}
