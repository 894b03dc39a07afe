package processor

import (
	"context"
	"fmt"

	"petshop/pets-service/internal/app/pets/service"
	"petshop/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически пересчитывает gauge pets_inventory
type CronScheduler struct {
	cron      *cron.Cron
	inventory service.InventoryRefresher
}

func NewCronScheduler(inventory service.InventoryRefresher) *CronScheduler {
	c := cron.New(cron.WithLogger(cronLogger{}))

	return &CronScheduler{
		cron:      c,
		inventory: inventory,
	}
}

// Start регистрирует задачу и сразу делает первый пересчёт
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.inventory.RefreshInventory(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh pets inventory")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid inventory schedule %q: %w", schedule, err)
	}

	s.cron.Start()

	if err := s.inventory.RefreshInventory(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed initial pets inventory refresh")
	}

	return nil
}

// Stop ждёт завершения уже запущенной задачи
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger направляет логи robfig/cron в zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
