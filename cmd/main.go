package main

import (
	"context"
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

	checkWindowHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/check_window"
	createAppointmentHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/create_appointment"
	deletePractitionerShiftHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/delete_practitioner_shift"
	getAppointmentHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/get_availability"
	getPractitionerAppointmentsHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/get_practitioner_appointments"
	getPractitionerShiftHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/get_practitioner_shift"
	recordQualityHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/record_quality"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/reschedule_appointment"
	submitConfirmationHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/submit_confirmation"
	transitionAppointmentHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/transition_appointment"
	updatePaymentStatusHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/update_payment_status"
	updatePractitionerShiftHandler "github.com/m04kA/SMC-HomeBookingService/internal/api/handlers/update_practitioner_shift"
	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/config"
	"github.com/m04kA/SMC-HomeBookingService/internal/infra/lock/redislock"
	catalogServiceClient "github.com/m04kA/SMC-HomeBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-HomeBookingService/internal/integrations/notifications"
	appointmentsService "github.com/m04kA/SMC-HomeBookingService/internal/service/appointments"
	shiftsService "github.com/m04kA/SMC-HomeBookingService/internal/service/shifts"
	checkWindowUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/check_window"
	computeAvailabilityUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/compute_availability"
	recordQualityUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/record_quality"
	rescheduleAppointmentUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/reschedule_appointment"
	reserveAppointmentUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/reserve_appointment"
	submitConfirmationUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/submit_confirmation"
	transitionAppointmentUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/transition_appointment"
	updatePaymentStatusUC "github.com/m04kA/SMC-HomeBookingService/internal/usecase/update_payment_status"
	"github.com/m04kA/SMC-HomeBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
	"github.com/m04kA/SMC-HomeBookingService/pkg/metrics"
)

// notifier отправка событий о записях
type notifier interface {
	Dispatch(ctx context.Context, event notifications.Event)
	Close() error
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

	log.Info("Starting SMC-HomeBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load scheduling timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbObserver       dbmetrics.Observer
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStorage(startupCtx, cfg, dbObserver, stopMetricsCh, log)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Распределённая блокировка дня поверх блокировки в хранилище
	locker := store.locker
	if cfg.Lock.Backend == config.LockBackendRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPassword,
			DB:       cfg.Lock.RedisDB,
		})
		defer redisClient.Close()

		locker = redislock.New(
			redisClient,
			time.Duration(cfg.Lock.TTL)*time.Second,
			time.Duration(cfg.Lock.WaitTimeout)*time.Second,
			log,
		)
		log.Info("Redis day lock enabled (addr=%s, ttl=%ds, wait=%ds)",
			cfg.Lock.RedisAddr, cfg.Lock.TTL, cfg.Lock.WaitTimeout)
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var eventNotifier notifier
	if len(cfg.Notifications.Brokers) > 0 {
		eventNotifier = notifications.NewKafkaDispatcher(cfg.Notifications.Brokers, cfg.Notifications.Topic, log, metricsCollector)
		log.Info("Kafka notifications enabled (brokers=%v, topic=%s)", cfg.Notifications.Brokers, cfg.Notifications.Topic)
	} else {
		eventNotifier = notifications.NewLogDispatcher(log)
		log.Info("Kafka brokers not configured, events are only logged")
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(store.appointments, log)
	shiftSvc := shiftsService.NewService(store.shifts, catalogClient, log)

	// Инициализируем use cases
	computeAvailabilityUseCase := computeAvailabilityUC.NewUseCase(
		store.appointments,
		catalogClient,
		shiftSvc,
		log,
	)
	checkWindowUseCase := checkWindowUC.NewUseCase(
		store.appointments,
		catalogClient,
		shiftSvc,
		log,
	)
	reserveAppointmentUseCase := reserveAppointmentUC.NewUseCase(
		store.appointments,
		store.holds,
		store.dayLocks,
		locker,
		catalogClient,
		shiftSvc,
		store.tx,
		eventNotifier,
		metricsCollector,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		store.appointments,
		store.holds,
		store.dayLocks,
		store.tx,
		eventNotifier,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		store.appointments,
		store.holds,
		store.dayLocks,
		locker,
		catalogClient,
		shiftSvc,
		store.tx,
		eventNotifier,
		metricsCollector,
		log,
	)
	submitConfirmationUseCase := submitConfirmationUC.NewUseCase(store.appointments, store.tx, eventNotifier, log)
	updatePaymentStatusUseCase := updatePaymentStatusUC.NewUseCase(store.appointments, store.tx, eventNotifier, log)
	recordQualityUseCase := recordQualityUC.NewUseCase(store.appointments, store.tx, log)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(computeAvailabilityUseCase, location, log)
	checkWindow := checkWindowHandler.NewHandler(checkWindowUseCase, location, log)
	getPractitionerAppointments := getPractitionerAppointmentsHandler.NewHandler(appointmentSvc, location, log)
	getPractitionerShift := getPractitionerShiftHandler.NewHandler(shiftSvc, location, log)
	updatePractitionerShift := updatePractitionerShiftHandler.NewHandler(shiftSvc, location, log)
	deletePractitionerShift := deletePractitionerShiftHandler.NewHandler(shiftSvc, location, log)
	createAppointment := createAppointmentHandler.NewHandler(reserveAppointmentUseCase, location, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, location, log)
	submitConfirmation := submitConfirmationHandler.NewHandler(submitConfirmationUseCase, log)
	recordQuality := recordQualityHandler.NewHandler(recordQualityUseCase, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(updatePaymentStatusUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Окна прибытия мастера на дату
	api.HandleFunc("/practitioners/{practitionerId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Проверка одного окна прибытия
	api.HandleFunc("/practitioners/{practitionerId}/availability/check",
		checkWindow.Handle).Methods(http.MethodGet)

	// Действующая смена мастера на дату
	api.HandleFunc("/practitioners/{practitionerId}/shifts/{date}",
		getPractitionerShift.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание мастера ---
	protected.HandleFunc("/practitioners/{practitionerId}/appointments",
		getPractitionerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/practitioners/{practitionerId}/shifts/{date}",
		updatePractitionerShift.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/practitioners/{practitionerId}/shifts/{date}",
		deletePractitionerShift.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	// Бронирование визита
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса (подтверждение, начало, завершение, отмена)
	protected.HandleFunc("/appointments/{appointmentId}/status", transitionAppointment.Handle).Methods(http.MethodPatch)

	// Перенос на другую дату или окно
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Детали визита от клиента
	protected.HandleFunc("/appointments/{appointmentId}/confirmation", submitConfirmation.Handle).Methods(http.MethodPut)

	// Отзыв о завершённом визите
	protected.HandleFunc("/appointments/{appointmentId}/quality", recordQuality.Handle).Methods(http.MethodPut)

	// --- Платежи ---
	protected.HandleFunc("/payments/status", updatePaymentStatus.Handle).Methods(http.MethodPost)

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

	// Дожидаемся отправки событий из очереди
	if err := eventNotifier.Close(); err != nil {
		log.Error("Failed to flush notifications: %v", err)
	}

	log.Info("Server stopped gracefully")
}
