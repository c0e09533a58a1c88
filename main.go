package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medagenda/config"
	"medagenda/cron"
	"medagenda/database"
	auditRepoPkg "medagenda/database/repository/audit"
	patientRepoPkg "medagenda/database/repository/patient"
	practitionerRepoPkg "medagenda/database/repository/practitioner"
	schedulerRepoPkg "medagenda/database/repository/scheduler"
	"medagenda/handlers"
	"medagenda/routes"
	"medagenda/services/appointment"
	"medagenda/services/blocking"
	"medagenda/services/notification"
	"medagenda/services/realtime"
	"medagenda/services/scheduling"
	"medagenda/services/tasks"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	practRepo := practitionerRepoPkg.NewMongoPractitionerRepo()
	patRepo := patientRepoPkg.NewMongoPatientRepo()
	schedRepo := schedulerRepoPkg.NewMongoSchedulerRepo()
	auditRepo := auditRepoPkg.NewMongoAuditRepo()

	for _, ensure := range []func() error{
		practRepo.EnsureIndexes,
		patRepo.EnsureIndexes,
		schedRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	availabilityService := &scheduling.DefaultAvailabilityService{
		Repo:             schedRepo,
		PractitionerRepo: practRepo,
		PatientRepo:      patRepo,
		Cache:            utils.GetCacheClient(),
	}

	notificationService := &notification.DefaultNotificationService{
		Patients:      patRepo,
		Practitioners: practRepo,
		Sender:        notification.NewSMTPSenderFromConfig(),
	}

	hub := realtime.NewHub()
	realtimeService := &realtime.DefaultRealtimeService{Hub: hub}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client:    asynqClient,
		LeadHours: config.AppConfig.ReminderLeadHours,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:             schedRepo,
		PractitionerRepo: practRepo,
		PatientRepo:      patRepo,
		AuditRepo:        auditRepo,
		Availability:     availabilityService,
		Notifier:         notificationService,
		Realtime:         realtimeService,
		Reminders:        reminderScheduler,
	}

	blockingService := &blocking.DefaultBlockingService{
		Repo:             schedRepo,
		PractitionerRepo: practRepo,
		Availability:     availabilityService,
	}

	// Background reminder worker.
	cron.InitReminderWorker(schedRepo, notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetAvailabilityHandler: handlers.GetAvailabilityHandler(availabilityService),
		GetDailyAgendaHandler:  handlers.GetDailyAgendaHandler(availabilityService),

		CreateAppointmentHandler:     handlers.CreateAppointmentHandler(appointmentService),
		GetAppointmentHandler:        handlers.GetAppointmentHandler(appointmentService),
		ArriveAppointmentHandler:     handlers.ArriveAppointmentHandler(appointmentService),
		CompleteAppointmentHandler:   handlers.CompleteAppointmentHandler(appointmentService),
		CancelAppointmentHandler:     handlers.CancelAppointmentHandler(appointmentService),
		RescheduleAppointmentHandler: handlers.RescheduleAppointmentHandler(appointmentService),
		ListPatientAppointments:      handlers.ListPatientAppointments(appointmentService),
		ListPractitionerAppointments: handlers.ListPractitionerAppointments(appointmentService),

		OverrideAppointmentHandler: handlers.OverrideAppointmentHandler(appointmentService),
		ListOverrideAuditHandler:   handlers.ListOverrideAuditHandler(auditRepo),

		SetBlockedIntervalsHandler: handlers.SetBlockedIntervalsHandler(blockingService),
		GetBlockedIntervalsHandler: handlers.GetBlockedIntervalsHandler(blockingService),
		CloseDayHandler:            handlers.CloseDayHandler(blockingService),

		CreatePractitionerHandler: handlers.CreatePractitionerHandler(practRepo),
		GetPractitionerHandler:    handlers.GetPractitionerHandler(practRepo),
		ListPractitionersHandler:  handlers.ListPractitionersHandler(practRepo),
		CreatePatientHandler:      handlers.CreatePatientHandler(patRepo),
		GetPatientHandler:         handlers.GetPatientHandler(patRepo),

		RealtimeWSHandler: handlers.RealtimeWSHandler(hub),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
