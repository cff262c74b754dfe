package scheduler

import (
	"context"
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/service"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DiscountScheduler periodically rebuilds the active-discount cache so
// readers never compute the active set against the database on the hot path.
type DiscountScheduler struct {
	cron            *cron.Cron
	discountService service.DiscountService
	spec            string
}

func NewDiscountScheduler(discountService service.DiscountService, spec string) *DiscountScheduler {
	return &DiscountScheduler{
		cron:            cron.New(),
		discountService: discountService,
		spec:            spec,
	}
}

// Start registers the refresh job and runs one refresh immediately so the
// cache is warm before the first tick.
func (s *DiscountScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.refresh()
	})
	if err != nil {
		logger.Error("Failed to add cron job for discount cache refresh", err)
		return err
	}

	s.refresh()

	s.cron.Start()
	logger.Info("Discount scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *DiscountScheduler) Stop() {
	logger.Info("Stopping discount scheduler...", nil)
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Discount scheduler stopped", nil)
}

func (s *DiscountScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.discountService.RefreshActiveDiscountCache(ctx); err != nil {
		logger.Error("Failed to refresh active discount cache", err)
	}
}
