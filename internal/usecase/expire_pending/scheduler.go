package expire_pending

import (
	"context"
	"sync"
	"time"
)

// Scheduler периодически запускает UseCase в фоне
type Scheduler struct {
	uc       *UseCase
	interval time.Duration
	logger   Logger

	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewScheduler создает планировщик с заданным интервалом
func NewScheduler(uc *UseCase, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		uc:       uc,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую горутину. Первый проход выполняется сразу
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.run(ctx)
		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-s.stopCh:
				s.logger.Info("ExpirePending: scheduler stopped")
				return
			case <-ctx.Done():
				s.logger.Info("ExpirePending: scheduler stopped (context done)")
				return
			}
		}
	}()

	s.logger.Info("ExpirePending: scheduler started with interval %v", s.interval)
}

// Stop останавливает планировщик и ждет завершения текущего прохода
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	if _, err := s.uc.Execute(ctx); err != nil {
		s.logger.Warn("ExpirePending: scheduled run failed: %v", err)
	}
}
