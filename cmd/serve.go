package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cancelBookingHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/cancel_booking"
	checkConflictHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/check_conflict"
	createBookingHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_booking"
	getClientReservationsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_client_reservations"
	getClinicHoursHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_clinic_hours"
	getProviderReservationsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_provider_reservations"
	updateReservationStatusHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_reservation_status"
	updateSlotAvailabilityHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_slot_availability"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/config"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/slot"
	providerDirectoryClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/providerdirectory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	reservationsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations"
	slotsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/txmanager"
)

// storage хранилища, выбранные по storage.driver
type storage struct {
	slots        scheduler.SlotStore
	reservations interface {
		scheduler.ReservationStore
		reservationsService.ReservationRepository
	}
	txManager scheduler.TransactionManager
	close     func()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runServer(configPath)
		},
	}
}

func runServer(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ClinicScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	stopMetricsCh := make(chan struct{})

	// Поднимаем хранилище
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		return err
	}
	defer store.close()

	hours := cfg.Clinic.ClinicHours()
	coordinator := scheduler.NewCoordinator(store.slots, store.reservations, store.txManager, hours)
	log.Info("Clinic hours: %s-%s, %d-minute slots, capacity %d",
		hours.DayStart, hours.DayEnd, hours.SlotDurationMinutes, hours.DefaultMaxCapacity)

	// Справочник врачей опционален: без него проверка врача пропускается
	var directory getAvailableSlotsUC.ProviderDirectory
	if cfg.ProviderDirectory.Enabled {
		directory = providerDirectoryClient.NewClient(
			cfg.ProviderDirectory.URL,
			time.Duration(cfg.ProviderDirectory.Timeout)*time.Second,
			log,
		)
		log.Info("Provider directory client initialized (url=%s, timeout=%ds)",
			cfg.ProviderDirectory.URL, cfg.ProviderDirectory.Timeout)
	}

	// Инициализируем сервисы и use cases
	reservationSvc := reservationsService.NewService(coordinator, store.reservations, metricsCollector, log)
	slotSvc := slotsService.NewService(coordinator, log)
	createBookingUseCase := createBookingUC.NewUseCase(coordinator, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(coordinator, directory, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(reservationSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	checkConflict := checkConflictHandler.NewHandler(reservationSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationSvc, log)
	getProviderReservations := getProviderReservationsHandler.NewHandler(reservationSvc, log)
	getClinicHours := getClinicHoursHandler.NewHandler(slotSvc, log)
	updateSlotAvailability := updateSlotAvailabilityHandler.NewHandler(slotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/clinic-hours", getClinicHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if cfg.Server.RateLimitRPS > 0 {
		protected.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).Middleware)
		log.Info("Rate limit: %.1f rps, burst %d per user", cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	// --- Записи ---
	protected.HandleFunc("/reservations", createBooking.Handle).Methods(http.MethodPost)
	// conflicts регистрируется раньше {reservationId}
	protected.HandleFunc("/reservations/conflicts", checkConflict.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Для врачей ---
	protected.HandleFunc("/providers/{providerId}/reservations", getProviderReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}/availability", updateSlotAvailability.Handle).Methods(http.MethodPut)

	var handler http.Handler = r
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Server.CORSAllowedOrigins)(r)
		log.Info("CORS enabled for %v", cfg.Server.CORSAllowedOrigins)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		close(stopMetricsCh)
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

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
	return nil
}

// openStorage создает хранилища по storage.driver
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		return &storage{
			slots:        memory.NewSlotStore(),
			reservations: memory.NewReservationStore(),
			txManager:    memory.TxManager{},
			close:        func() {},
		}, nil
	}

	db, wrapped, err := openDB(cfg, m, stopCh)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	return &storage{
		slots:        slotRepo.NewRepository(wrapped),
		reservations: reservationRepo.NewRepository(wrapped),
		txManager:    txmanager.NewTransactionManager(wrapped),
		close:        func() { _ = db.Close() },
	}, nil
}

// openDB подключается к Postgres и оборачивает соединение метриками
func openDB(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}) (*sql.DB, *dbmetrics.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dbmetrics.WrapWithDefault(db, m, stopCh), nil
}
