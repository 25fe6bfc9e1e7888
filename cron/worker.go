package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"slotboard/services/board"
	"slotboard/utils"
)

// StartRefreshWorker periodically re-reads the backing store into the board.
// Other coordinators may be writing the same spreadsheet; with no conflict
// detection in the protocol, a scheduled refetch is what bounds the drift.
func StartRefreshWorker(spec string, b board.Service) *cron.Cron {
	logger := utils.GetLogger()
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := b.Refresh(ctx); err != nil {
			logger.Warn("scheduled refresh failed", zap.Error(err))
			return
		}
		logger.Debug("scheduled refresh completed")
	})
	if err != nil {
		logger.Fatal("invalid refresh cron spec", zap.String("spec", spec), zap.Error(err))
	}

	c.Start()
	return c
}
