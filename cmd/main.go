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

	cancelBookingHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/create_booking"
	getCalendarHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_calendar"
	getScheduleHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_schedule"
	getSlotOccupancyHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_slot_occupancy"
	toggleSlotStatusHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/toggle_slot_status"
	updateScheduleHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/config"
	"github.com/m04kA/SMC-SlotCalendar/internal/coordinator"
	bookingCache "github.com/m04kA/SMC-SlotCalendar/internal/infra/cache/bookings"
	bookingRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/schedule"
	userServiceClient "github.com/m04kA/SMC-SlotCalendar/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	scheduleService "github.com/m04kA/SMC-SlotCalendar/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
	getCalendarUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	manageSlotsUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
	"github.com/m04kA/SMC-SlotCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
	"github.com/m04kA/SMC-SlotCalendar/pkg/metrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/txmanager"
)

// calendarStore источник помесячных выборок для координаторов
type calendarStore interface {
	coordinator.Store
	lifecycle.BookingStore
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SlotCalendar...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	defaults, err := cfg.Schedule.ScheduleConfig(0)
	if err != nil {
		log.Fatal("Invalid schedule defaults: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Без метрик обёртка только передаёт запросы дальше
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, txMgr)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	var store calendarStore = bookingRepository

	// Кэш помесячных выборок (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: при ошибках CachedStore читает из хранилища
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		store = bookingCache.NewCachedStore(
			bookingRepository,
			bookingCache.NewRedisCache(redisClient),
			time.Duration(cfg.Redis.TTL)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Redis cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Интеграция с UserService (если включена)
	var userClient createBookingUC.UserServiceClient
	if cfg.UserService.Enabled {
		userClient = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, defaults, log)
	bookingManager := lifecycle.NewService(store, metricsCollector, location, log)

	// Координаторы сетки обновляются только после подтверждённых записей
	registry := coordinator.NewRegistry(
		store,
		scheduleSvc,
		cfg.Schedule.SnapshotMaxAgeDuration(),
		metricsCollector,
		log,
	)
	bookingManager.AddObserver(registry)
	scheduleSvc.AddObserver(registry)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(scheduleSvc, bookingManager, userClient, location, log)
	manageSlotsUseCase := manageSlotsUC.NewUseCase(scheduleSvc, bookingManager, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(registry, log)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getSlotOccupancy := getSlotOccupancyHandler.NewHandler(manageSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, getCalendarUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(manageSlotsUseCase, getCalendarUseCase, log)
	toggleSlotStatus := toggleSlotStatusHandler.NewHandler(manageSlotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Error("GET /health - Database is unavailable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (пользователь необязателен)
	// ============================================================

	// Сетка календаря: day, week или month
	api.Handle("/orgs/{orgId}/calendar",
		middleware.OptionalAuth(http.HandlerFunc(getCalendar.Handle))).Methods(http.MethodGet)

	// Актуальная занятость слота
	api.Handle("/orgs/{orgId}/slots/{date}/{hour}/occupancy",
		middleware.OptionalAuth(http.HandlerFunc(getSlotOccupancy.Handle))).Methods(http.MethodGet)

	// Настройки расписания
	api.Handle("/orgs/{orgId}/schedule",
		middleware.OptionalAuth(http.HandlerFunc(getSchedule.Handle))).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.ClientTTL)*time.Second,
			log,
		)
		if err := limiter.TrustProxies(cfg.RateLimit.TrustedProxies...); err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		protected.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Бронирования ---
	protected.HandleFunc("/orgs/{orgId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orgs/{orgId}/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Управление (для администраторов) ---
	protected.HandleFunc("/orgs/{orgId}/slots/{date}/{hour}/status", toggleSlotStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orgs/{orgId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if limiter != nil {
		limiter.Close()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
