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

	bookRoomHandler "github.com/codehunter/hotelbooking/internal/api/handlers/book_room"
	cancelReservationHandler "github.com/codehunter/hotelbooking/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/codehunter/hotelbooking/internal/api/handlers/check_availability"
	completeReservationHandler "github.com/codehunter/hotelbooking/internal/api/handlers/complete_reservation"
	confirmReservationHandler "github.com/codehunter/hotelbooking/internal/api/handlers/confirm_reservation"
	createRoomHandler "github.com/codehunter/hotelbooking/internal/api/handlers/create_room"
	getGuestReservationsHandler "github.com/codehunter/hotelbooking/internal/api/handlers/get_guest_reservations"
	getOccupiedRangesHandler "github.com/codehunter/hotelbooking/internal/api/handlers/get_occupied_ranges"
	getReservationHandler "github.com/codehunter/hotelbooking/internal/api/handlers/get_reservation"
	listRoomsHandler "github.com/codehunter/hotelbooking/internal/api/handlers/list_rooms"
	modifyReservationHandler "github.com/codehunter/hotelbooking/internal/api/handlers/modify_reservation"
	reportingSnapshotHandler "github.com/codehunter/hotelbooking/internal/api/handlers/reporting_snapshot"
	setRoomActiveHandler "github.com/codehunter/hotelbooking/internal/api/handlers/set_room_active"
	"github.com/codehunter/hotelbooking/internal/api/middleware"
	"github.com/codehunter/hotelbooking/internal/config"
	availabilityCache "github.com/codehunter/hotelbooking/internal/infra/cache/availability"
	reservationRepo "github.com/codehunter/hotelbooking/internal/infra/storage/reservation"
	roomRepo "github.com/codehunter/hotelbooking/internal/infra/storage/room"
	reservationsService "github.com/codehunter/hotelbooking/internal/service/reservations"
	roomsService "github.com/codehunter/hotelbooking/internal/service/rooms"
	bookRoomUC "github.com/codehunter/hotelbooking/internal/usecase/book_room"
	cancelReservationUC "github.com/codehunter/hotelbooking/internal/usecase/cancel_reservation"
	checkAvailabilityUC "github.com/codehunter/hotelbooking/internal/usecase/check_availability"
	confirmReservationUC "github.com/codehunter/hotelbooking/internal/usecase/confirm_reservation"
	modifyReservationUC "github.com/codehunter/hotelbooking/internal/usecase/modify_reservation"
	"github.com/codehunter/hotelbooking/pkg/dbmetrics"
	"github.com/codehunter/hotelbooking/pkg/logger"
	"github.com/codehunter/hotelbooking/pkg/metrics"
	"github.com/codehunter/hotelbooking/pkg/simpletxmanager"
	"github.com/codehunter/hotelbooking/pkg/txmanager"
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

	log.Info("Starting hotelbooking service...")
	log.Info("Configuration loaded from config.toml (confirm_mode=%s)", cfg.Booking.ConfirmMode)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем кэш занятых интервалов (если Redis включен)
	// Кэш обслуживает только read-only запросы, путь бронирования всегда идет в БД
	var (
		cache       checkAvailabilityUC.AvailabilityCache
		invalidator bookRoomUC.AvailabilityInvalidator
		redisClient *redis.Client
	)

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping Redis: %v", err)
		}
		defer redisClient.Close()

		redisCache := availabilityCache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		cache = redisCache
		invalidator = redisCache
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	} else {
		cache = availabilityCache.Nop{}
		invalidator = availabilityCache.Nop{}
		log.Info("Availability cache disabled, all reads go to database")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		roomRepository        *roomRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	var outcomeMetrics bookRoomUC.MetricsRecorder = bookRoomUC.NopMetrics{}
	if cfg.Metrics.Enabled {
		outcomeMetrics = metricsCollector
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		txMgr,
		log,
	)
	roomSvc := roomsService.NewService(roomRepository, log)

	// Инициализируем use cases
	bookingPolicy := bookRoomUC.Policy{
		ConfirmMode:        cfg.Booking.Mode(),
		MaxStayNights:      cfg.Booking.MaxStayNights,
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
	}

	bookRoomUseCase := bookRoomUC.NewUseCase(
		reservationRepository,
		roomRepository,
		txMgr,
		invalidator,
		outcomeMetrics,
		bookingPolicy,
		log,
	)
	confirmReservationUseCase := confirmReservationUC.NewUseCase(reservationRepository, log)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(reservationRepository, invalidator, log)
	modifyReservationUseCase := modifyReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		invalidator,
		modifyReservationUC.Policy{MaxStayNights: cfg.Booking.MaxStayNights},
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		roomRepository,
		cache,
		log,
	)

	// Инициализируем handlers
	bookRoom := bookRoomHandler.NewHandler(bookRoomUseCase, log)
	confirmReservation := confirmReservationHandler.NewHandler(confirmReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	modifyReservation := modifyReservationHandler.NewHandler(modifyReservationUseCase, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getOccupiedRanges := getOccupiedRangesHandler.NewHandler(checkAvailabilityUseCase, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	setRoomActive := setRoomActiveHandler.NewHandler(roomSvc, log)
	reportingSnapshot := reportingSnapshotHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Инвентарь номеров
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{roomId}/active", setRoomActive.Handle).Methods(http.MethodPatch)

	// Доступность номера
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/occupied-ranges", getOccupiedRanges.Handle).Methods(http.MethodGet)

	// Отчетный срез для read-only потребителей (AI-ассистент)
	api.HandleFunc("/reporting/reservations", reportingSnapshot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Guest-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/reservations", bookRoom.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Переходы статуса
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)

	// Перенос дат
	protected.HandleFunc("/reservations/{reservationId}/dates", modifyReservation.Handle).Methods(http.MethodPut)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/reservations", getGuestReservations.Handle).Methods(http.MethodGet)

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
