package cron

import (
	"context"
	"encoding/json"
	"time"

	"medagenda/config"
	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/services/notification"
	"medagenda/services/tasks"
	"medagenda/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(repo schedulerRepo.SchedulerRepository, notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, notifSvc))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask re-reads the appointment at fire time: reminders are
// only sent for appointments still in agendada.
func handleReminderTask(repo schedulerRepo.SchedulerRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		appt, err := repo.GetAppointmentByID(ctx, p.AppointmentID)
		if err != nil {
			logger.Error("reminder lookup failed",
				zap.String("appointmentID", p.AppointmentID), zap.Error(err))
			return err
		}
		if appt == nil || appt.Status != models.StatusScheduled {
			// Cancelled, rescheduled away, or already seen. Drop silently.
			return nil
		}

		logger.Info("firing appointment reminder",
			zap.String("appointmentID", appt.ID), zap.String("date", appt.Date))

		if err := notifSvc.SendAppointmentEvent(ctx, models.EventReminder, appt); err != nil {
			logger.Error("failed to send reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
			return err
		}
		return nil
	}
}
