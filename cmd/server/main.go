package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"trainingadmin/config"
	"trainingadmin/internal/adapters/auth"
	"trainingadmin/internal/adapters/email"
	httpdelivery "trainingadmin/internal/delivery/http"
	"trainingadmin/internal/delivery/http/controllers"
	"trainingadmin/internal/delivery/http/middleware"
	"trainingadmin/internal/repository/postgres"
	"trainingadmin/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Training Program Administration API
// @version 1.0
// @description Classroom reservation and conflict resolution for training rounds.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	reservationRepo := postgres.NewReservationRepository(db)
	classroomRepo := postgres.NewClassroomRepository(db)
	curriculumRepo := postgres.NewCurriculumScheduleRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	checker := services.NewConflictChecker(reservationRepo)
	notifier := services.NewAssignmentNotifier(mailer, logger)
	assignmentService := services.NewAssignmentService(
		reservationRepo, classroomRepo, curriculumRepo, checker, notifier, serviceTimeout,
	)
	availabilityService := services.NewAvailabilityService(classroomRepo, checker, serviceTimeout)
	scheduleService := services.NewScheduleQueryService(reservationRepo, serviceTimeout)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	assignmentController := controllers.NewAssignmentController(logger, assignmentService)
	classroomController := controllers.NewClassroomController(logger, availabilityService, scheduleService)

	mux := httpdelivery.NewRouter(assignmentController, classroomController, verifier, logger)
	handler := middleware.RequestID(
		middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux)),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
