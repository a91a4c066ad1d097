package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// pruneTimeout bounds one pruning run
const pruneTimeout = 5 * time.Minute

// Pruner removes print history older than a retention window
type Pruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// StartScheduler runs print history pruning on the given cron schedule
func StartScheduler(p Pruner, schedule string, retention time.Duration) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		log.Println("[CRON] Pruning print history...")
		PrunePrintHistory(p, retention)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule print history pruning: %w", err)
	}

	c.Start()
	log.Printf("[CRON] Scheduler started (%s, retention %s)", schedule, retention)
	return c, nil
}

// PrunePrintHistory runs one pruning pass
func PrunePrintHistory(p Pruner, retention time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	removed, err := p.Prune(ctx, retention)
	if err != nil {
		log.Printf("[JOB] Error pruning print history: %v", err)
		return
	}
	log.Printf("[JOB] Removed %d print jobs older than %s", removed, retention)
}
