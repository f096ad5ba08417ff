package cache

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StartSweeper removes expired memory entries every interval. Call
// Shutdown on the returned scheduler to stop it.
func StartSweeper(store *MemoryStore, every time.Duration, logger *zap.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if n := store.Sweep(); n > 0 {
				logger.Debug("swept expired cache entries", zap.Int("removed", n))
			}
		}),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
