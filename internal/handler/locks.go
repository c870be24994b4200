package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

func runLockKey(scheduleID int64) string {
	return fmt.Sprintf("schedule_run_lock_%d", scheduleID)
}

// acquireRunLock takes the per-schedule run lock so at most one Generate or
// AutoAssign executes per schedule at a time. The TTL caps how long a
// crashed run can keep a schedule busy.
func (h *Handler) acquireRunLock(scheduleID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	ttl := time.Duration(h.config.Scheduling.RunLockTTL) * time.Second
	ok, err := h.redisClient.SetNX(ctx, runLockKey(scheduleID), "1", ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrScheduleBusy
	}

	return nil
}

func (h *Handler) releaseRunLock(scheduleID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, runLockKey(scheduleID)).Err(); err != nil {
		slog.Error("failed to release run lock", "schedule_id", scheduleID, "error", err)
	}
}
