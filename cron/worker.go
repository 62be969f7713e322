package cron

import (
	"context"
	"fmt"
	"time"

	"flowmaster/config"
	"flowmaster/services/notification"
	"flowmaster/services/tasks"
	"flowmaster/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker runs the reminder job on a schedule through an asynq queue.
type ReminderWorker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewReminderWorker registers the periodic scan and its handler.
func NewReminderWorker(notifSvc notification.NotificationService) (*ReminderWorker, error) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderScan, handleReminderTask(notifSvc))

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{Location: time.UTC})
	task, err := tasks.NewReminderScanTask(tasks.ReminderWindow)
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(config.AppConfig.ReminderSchedule, task); err != nil {
		return nil, fmt.Errorf("failed to register reminder schedule %q: %w", config.AppConfig.ReminderSchedule, err)
	}

	return &ReminderWorker{server: srv, scheduler: scheduler, mux: mux}, nil
}

// Start runs the worker and the scheduler in the background.
func (w *ReminderWorker) Start(ctx context.Context) {
	logger := utils.GetLogger()

	go monitorRedisConnection(ctx)

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Run(w.mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		logger.Error("reminder worker gave up")
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			logger.Error("reminder scheduler stopped", zap.Error(err))
		}
	}()
}

// Shutdown stops the scheduler and drains the worker.
func (w *ReminderWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.DecodeReminderPayload(task)
		if err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		sent, err := notifSvc.RunReminderJob(ctx, p.Window)
		if err != nil {
			logger.Error("reminder job failed", zap.Error(err))
			return err
		}
		logger.Debug("reminder task done", zap.Int("sent", sent))
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to surface outages in the logs.
func monitorRedisConnection(ctx context.Context) {
	logger := utils.GetLogger()
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("reminder queue redis unreachable", zap.Error(err))
			}
		}
	}
}
