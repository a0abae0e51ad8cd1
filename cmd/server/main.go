package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/database"
	"github.com/edunexus/schoolhub/internal/handler"
	"github.com/edunexus/schoolhub/internal/logger"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/router"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/session"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/edunexus/schoolhub/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SchoolHub Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Refresh Events ────────────────────────────────────────────────
	// Services publish through the bridge so every replica's bus sees the
	// event; the bridge feeds the local bus from Redis.
	bus := refresh.NewBus(0, log)
	bridge := refresh.NewRedisBridge(rdb, bus, log)
	<-bridge.Run(ctx)

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	branchRepo := repository.NewBranchRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	timetableRepo := repository.NewTimetableRepository(pool)
	hostelRepo := repository.NewHostelRepository(pool)
	transportRepo := repository.NewTransportRepository(pool)
	libraryRepo := repository.NewLibraryRepository(pool)
	feeRepo := repository.NewFeeRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	rectificationRepo := repository.NewRectificationRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	gateway := payment.NewMidtrans(cfg, log)

	authService := service.NewAuthService(cfg, userRepo, session.NewRedisStore(rdb), log)
	userService := service.NewUserService(userRepo, authService, bridge, log)
	branchService := service.NewBranchService(branchRepo, bridge)
	settingService := service.NewSettingService(settingRepo, cfg, bridge, log)
	classService := service.NewClassService(classRepo, staffRepo, studentRepo, bridge)
	studentService := service.NewStudentService(studentRepo, classRepo, userRepo, bridge, log)
	staffService := service.NewStaffService(staffRepo, bridge)
	attendanceService := service.NewAttendanceService(attendanceRepo, leaveRepo, staffRepo, classRepo, settingService, cfg, bridge, log)
	leaveService := service.NewLeaveService(leaveRepo, bridge, log)
	timetableService := service.NewTimetableService(timetableRepo, classRepo, staffRepo, bridge)
	hostelService := service.NewHostelService(hostelRepo, bridge)
	transportService := service.NewTransportService(transportRepo, bridge)
	libraryService := service.NewLibraryService(libraryRepo, settingService, cfg, bridge, log)
	feeService := service.NewFeeService(feeRepo, classRepo, studentRepo, gateway, bridge, log)
	paymentService := service.NewPaymentService(feeRepo, gateway, rdb, cfg, bridge, log)
	mediaService := service.NewMediaService(cfg)
	announcementService := service.NewAnnouncementService(announcementRepo, classRepo, studentRepo, bridge)
	rectificationService := service.NewRectificationService(rectificationRepo, bridge, log)
	reportService := service.NewReportService(attendanceService, feeRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Branch:        handler.NewBranchHandler(branchService),
		Class:         handler.NewClassHandler(classService, attendanceService, timetableService),
		Student:       handler.NewStudentHandler(studentService, reportService),
		Staff:         handler.NewStaffHandler(staffService, attendanceService),
		Leave:         handler.NewLeaveHandler(leaveService),
		Timetable:     handler.NewTimetableHandler(timetableService),
		Hostel:        handler.NewHostelHandler(hostelService),
		Transport:     handler.NewTransportHandler(transportService),
		Library:       handler.NewLibraryHandler(libraryService),
		Fee:           handler.NewFeeHandler(feeService),
		Payment:       handler.NewPaymentHandler(paymentService, log),
		Media:         handler.NewMediaHandler(mediaService),
		Announcement:  handler.NewAnnouncementHandler(announcementService),
		Rectification: handler.NewRectificationHandler(rectificationService),
		Report:        handler.NewReportHandler(reportService, dashboardService),
		Setting:       handler.NewSettingHandler(settingService),
		Refresh:       handler.NewRefreshHandler(bus, log, cfg.AllowedOrigins),
		System:        handler.NewSystemHandler(pool, rdb, bus, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	paymentWorker := worker.NewPaymentWorker(rdb, paymentService, log)
	go paymentWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Close refresh streams so hijacked WebSocket connections return.
	bus.Close()

	// 2. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 3. Stop the payment worker; unfinished notifications stay queued.
	workerCancel()
	cancel()
	time.Sleep(time.Second)

	log.Info().Msg("Shutdown complete")
}
