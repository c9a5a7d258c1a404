package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/app"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/auth"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/config"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/controller"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository/pg"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

const tokenTTL = 12 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting sports program server",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to reach database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, "sports-program", tokenTTL)

	userRepo := repository.NewUserRepository(pool)
	athleteRepo := repository.NewAthleteRepository(pool)
	guardianRepo := repository.NewGuardianRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	recordRepo := repository.NewRecordRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	bookingStore := pg.NewBookingStore(pool)

	bookingSvc := service.NewBookingService(bookingStore, logger)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, bookingSvc, logger)

	svc := controller.Services{
		Users:         service.NewUserService(userRepo, tokens, logger),
		Athletes:      service.NewAthleteService(athleteRepo, guardianRepo, logger),
		Courses:       service.NewCourseService(courseRepo, athleteRepo, logger),
		Attendance:    service.NewAttendanceService(attendanceRepo, sessionRepo, courseRepo, athleteRepo, guardianRepo, logger),
		Booking:       bookingSvc,
		Availability:  availabilitySvc,
		Records:       service.NewRecordService(recordRepo, athleteRepo, guardianRepo, userRepo, logger),
		Announcements: service.NewAnnouncementService(announcementRepo, courseRepo, athleteRepo, guardianRepo, logger),
		Tokens:        tokens,
		HorizonWeeks:  cfg.SlotHorizonWeeks,
	}

	scheduler := app.NewScheduler(availabilitySvc, cfg.SlotHorizonWeeks, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	e := controller.NewRouter(svc)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
