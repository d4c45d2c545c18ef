package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"padel-club-api/internal/pkg/config"
	"padel-club-api/internal/usecase/commands"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartScheduler),
)

// StartScheduler runs the daily recurring-booking expansion and the
// pending-record purge inside the API process. Clubs running a separate
// worker set SCHEDULER_DISABLED.
func StartScheduler(
	lc fx.Lifecycle,
	cfg config.Config,
	loc *time.Location,
	recurringCommands commands.RecurringCommands,
	paymentCommands commands.PaymentCommands,
	logger *slog.Logger,
) error {
	if cfg.Scheduler.Disabled {
		logger.Info("in-process scheduler disabled")
		return nil
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.CronJob(cfg.Scheduler.ExpandCron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := recurringCommands.Expand(ctx, time.Now(), cfg.Scheduler.ExpandHorizonDays)
			if err != nil {
				logger.Error("recurring expansion failed", "error", err)
				return
			}
			logger.Info("recurring expansion completed",
				"target_date", result.TargetDate.Format("2006-01-02"),
				"created", result.Created,
				"skipped", result.Skipped)
		}),
		gocron.WithName("recurring-expansion"),
	)
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.Scheduler.PurgeInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			result, err := paymentCommands.PurgeExpiredPending(ctx)
			if err != nil {
				logger.Error("pending purge failed", "error", err)
				return
			}
			if result.Payments > 0 || result.Sales > 0 {
				logger.Info("purged expired pending records",
					"payments", result.Payments, "sales", result.Sales)
			}
		}),
		gocron.WithName("pending-purge"),
	)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sched.Start()
			logger.Info("scheduler started",
				"expand_cron", cfg.Scheduler.ExpandCron,
				"purge_interval", cfg.Scheduler.PurgeInterval)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return sched.Shutdown()
		},
	})

	return nil
}
