package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/get_booking"
	getUnavailabilityHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/get_unavailability"
	getUserBookingsHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/get_user_bookings"
	sendCodeHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/send_code"
	setUnavailabilityHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/set_unavailability"
	updateBookingStatusHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/update_booking_status"
	verifyCodeHandler "github.com/inkfade/IFS-BookingService/internal/api/handlers/verify_code"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
	"github.com/inkfade/IFS-BookingService/internal/config"
	"github.com/inkfade/IFS-BookingService/internal/infra/codestore"
	appointmentRepo "github.com/inkfade/IFS-BookingService/internal/infra/storage/appointment"
	sequenceRepo "github.com/inkfade/IFS-BookingService/internal/infra/storage/sequence"
	unavailabilityRepo "github.com/inkfade/IFS-BookingService/internal/infra/storage/unavailability"
	identityServiceClient "github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
	notifyServiceClient "github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
	appointmentsService "github.com/inkfade/IFS-BookingService/internal/service/appointments"
	scheduleService "github.com/inkfade/IFS-BookingService/internal/service/schedule"
	verificationService "github.com/inkfade/IFS-BookingService/internal/service/verification"
	createBookingUC "github.com/inkfade/IFS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/inkfade/IFS-BookingService/internal/usecase/get_available_slots"
	"github.com/inkfade/IFS-BookingService/pkg/dbmetrics"
	"github.com/inkfade/IFS-BookingService/pkg/logger"
	"github.com/inkfade/IFS-BookingService/pkg/metrics"
	"github.com/inkfade/IFS-BookingService/pkg/simpletxmanager"
	"github.com/inkfade/IFS-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting IFS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики регистрируются всегда, endpoint и сбор статистики пула
	// включаются конфигом
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (хранилище кодов подтверждения)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository    *appointmentRepo.Repository
		unavailabilityRepository *unavailabilityRepo.Repository
		sequenceRepository       *sequenceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		unavailabilityRepository = unavailabilityRepo.NewRepository(wrappedDB)
		sequenceRepository = sequenceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		unavailabilityRepository = unavailabilityRepo.NewRepository(db)
		sequenceRepository = sequenceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище одноразовых кодов
	codeTTL := time.Duration(cfg.Verification.CodeTTLMinutes) * time.Minute
	codeStore := codestore.NewStore(redisClient, codeTTL)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		unavailabilityRepository,
		notifyClient,
		metricsCollector,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		unavailabilityRepository,
		identityClient,
		log,
	)
	verificationSvc := verificationService.NewService(
		codeStore,
		notifyClient,
		codeTTL,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		unavailabilityRepository,
		sequenceRepository,
		identityClient,
		txMgr,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		unavailabilityRepository,
		identityClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(appointmentSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(appointmentSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(appointmentSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(appointmentSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(appointmentSvc, log)
	setUnavailability := setUnavailabilityHandler.NewHandler(scheduleSvc, log)
	getUnavailability := getUnavailabilityHandler.NewHandler(scheduleSvc, log)
	sendCode := sendCodeHandler.NewHandler(verificationSvc, log)
	verifyCode := verifyCodeHandler.NewHandler(verificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера
	api.HandleFunc("/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Коды подтверждения
	api.HandleFunc("/auth/send-code", sendCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-code", verifyCode.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перевод записи в новый статус
	protected.HandleFunc("/appointments/{appointmentId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Расписание мастеров ---
	protected.HandleFunc("/staff/{staffId}/unavailability", setUnavailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/unavailability", getUnavailability.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/appointments", getAdminBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
