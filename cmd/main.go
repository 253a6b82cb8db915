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

	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	listHolidaysHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_holidays"
	requestAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/request_appointment"
	saveAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/save_appointment"
	saveWindowHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/save_window"
	transitionAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/transition_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	requestAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_appointment"
	saveAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_appointment"
	transitionAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/clock"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// slotLocker блокировка слота: Redis или no-op, если Redis выключен
type slotLocker interface {
	WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
}

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Clinic.Location()
	if err != nil {
		log.Fatal("Failed to load clinic timezone %q: %v", cfg.Clinic.Timezone, err)
	}
	timeProvider := clock.NewReal(location)
	policy := cfg.Policy()
	log.Info("Clinic: timezone=%s, hours=%s-%s, cancellation_lead=%s, reject_siblings=%t",
		cfg.Clinic.Timezone, cfg.Clinic.OpenTime, cfg.Clinic.CloseTime, policy.CancellationLead, policy.RejectSiblingsOnValidate)

	// Инициализируем метрики (если включены), nil - метрики выключены
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

	// Обёртка собирает метрики запросов, если metricsCollector != nil
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Блокировка слотов
	var locker slotLocker = lock.NoopLocker{}
	if cfg.Redis.Enabled {
		rdb, err := lock.NewClient(context.Background(), lock.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		locker = lock.NewRedisLocker(rdb, cfg.Redis.LockTTL())
		log.Info("Redis slot lock enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	} else {
		log.Warn("Redis disabled: slot races are resolved by the database only")
	}

	// Инициализируем репозитории и менеджер транзакций
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	doctorRepository := doctorRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Booking.SerializableRetries))

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(doctorRepository, cfg.Clinic.Hours(), log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, timeProvider, policy, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		timeProvider,
		log,
	)

	requestAppointmentUseCase := requestAppointmentUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		locker,
		txMgr,
		timeProvider,
		metricsCollector,
		log,
	)

	saveAppointmentUseCase := saveAppointmentUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		locker,
		txMgr,
		timeProvider,
		metricsCollector,
		log,
	)

	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		locker,
		txMgr,
		timeProvider,
		policy,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	requestAppointment := requestAppointmentHandler.NewHandler(requestAppointmentUseCase, log)
	saveAppointment := saveAppointmentHandler.NewHandler(saveAppointmentUseCase, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	saveWindow := saveWindowHandler.NewHandler(availabilitySvc, log)
	listHolidays := listHolidaysHandler.NewHandler(timeProvider, location, log)
	health := healthHandler.NewHandler(map[string]healthHandler.Pinger{
		"postgres": healthHandler.PingFunc(wrappedDB.PingContext),
		"lock":     locker,
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты врача или специальности на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Праздничные дни года
	api.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на прием ---
	// Заявка пациента на прием (pending)
	protected.HandleFunc("/appointments", requestAppointment.Handle).Methods(http.MethodPost)

	// Список записей (пациент - свои, врач - своя агенда, персонал - все)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса: подтверждение, отмена, прием, неявка
	protected.HandleFunc("/appointments/{appointmentId}/state", transitionAppointment.Handle).Methods(http.MethodPatch)

	// Удаление записи (персонал)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Персонал клиники ---
	// Создание и редактирование записи в обход заявки пациента
	protected.HandleFunc("/staff/appointments", saveAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/appointments/{appointmentId}", saveAppointment.Handle).Methods(http.MethodPut)

	// Окна приема врачей
	protected.HandleFunc("/doctors/{doctorId}/windows", saveWindow.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/{doctorId}/windows/{windowId}", saveWindow.HandleDelete).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
