package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	exportBookingsHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/export_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/get_availability"
	healthHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/health"
	listBlackoutsHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/list_blackouts"
	submitBookingHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/submit_booking"
	toggleBlackoutHandler "github.com/m04kA/SMC-SchedulerService/internal/api/handlers/toggle_blackout"
	"github.com/m04kA/SMC-SchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulerService/internal/config"
	"github.com/m04kA/SMC-SchedulerService/internal/infra/storage/availability"
	blackoutRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/blackout"
	bookingRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulerService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulerService/internal/infra/storage/mirror"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/amqpevents"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/smtpmail"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/webhook"
	"github.com/m04kA/SMC-SchedulerService/internal/service/adminauth"
	blackoutsService "github.com/m04kA/SMC-SchedulerService/internal/service/blackouts"
	bookingsService "github.com/m04kA/SMC-SchedulerService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulerService/internal/service/calendar"
	"github.com/m04kA/SMC-SchedulerService/internal/service/notifications"
	getAvailabilityUC "github.com/m04kA/SMC-SchedulerService/internal/usecase/get_availability"
	submitBookingUC "github.com/m04kA/SMC-SchedulerService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/logger"
	"github.com/m04kA/SMC-SchedulerService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/sqlbuilder"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-SchedulerService...")
	log.Info("Configuration loaded from %s (storage=%s)", *configPath, cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Основное хранилище
	primaryBookings, primaryBlackouts, db, err := openPrimary(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	// Зеркало в Redis (best-effort)
	var storeMirror availability.Mirror
	var redisMirror *mirror.Mirror
	if cfg.Mirror.Enabled {
		redisMirror = mirror.New(redis.NewClient(&redis.Options{
			Addr:     cfg.Mirror.Addr,
			Password: cfg.Mirror.Password,
			DB:       cfg.Mirror.DB,
		}), cfg.Mirror.Prefix)

		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Storage.MirrorTimeout())
		if err := redisMirror.Ping(pingCtx); err != nil {
			log.Warn("Redis mirror is not reachable yet (addr=%s): %v", cfg.Mirror.Addr, err)
		}
		cancel()

		storeMirror = redisMirror
		log.Info("Redis mirror enabled (addr=%s, prefix=%s)", cfg.Mirror.Addr, cfg.Mirror.Prefix)
	}

	store := availability.NewStore(primaryBookings, primaryBlackouts, storeMirror, metricsCollector, log, availability.Options{
		OperationTimeout: cfg.Storage.OperationTimeout(),
		MirrorTimeout:    cfg.Storage.MirrorTimeout(),
	})

	// Рабочий календарь
	calendarCfg, err := cfg.Policy.CalendarConfig()
	if err != nil {
		log.Fatal("Invalid policy config: %v", err)
	}
	policy, err := calendar.NewPolicy(calendarCfg)
	if err != nil {
		log.Fatal("Failed to initialize calendar policy: %v", err)
	}
	log.Info("Calendar policy: %02d:00-%02d:00, lunch %s-%s, %d slots, tz=%s, reject_past_dates=%t",
		cfg.Policy.OpenHour, cfg.Policy.CloseHour, cfg.Policy.LunchStart, cfg.Policy.LunchEnd,
		len(policy.Catalog()), policy.Location(), cfg.Policy.RejectPastDates)

	// Каналы уведомлений
	nc := cfg.Notifications
	sinks := []notifications.Sink{
		smtpmail.NewClient(smtpmail.Config{
			Host:     nc.Email.Host,
			Port:     nc.Email.Port,
			Username: nc.Email.Username,
			Password: nc.Email.Password,
			SSL:      nc.Email.SSL,
			FromName: nc.Email.FromName,
			Subject:  nc.Email.Subject,
			SignOff:  nc.Email.SignOff,
		}, log),
	}

	gcalCfg := googlecalendar.Config{
		ServiceAccountEmail: nc.GoogleCalendar.ServiceAccountEmail,
		PrivateKey:          nc.GoogleCalendar.PrivateKey,
		CalendarID:          nc.GoogleCalendar.CalendarID,
		TimeZone:            nc.GoogleCalendar.TimeZone,
	}
	if gcalCfg.Enabled() {
		gcal, err := googlecalendar.NewClient(context.Background(), gcalCfg, log)
		if err != nil {
			log.Error("Google Calendar disabled: %v", err)
		} else {
			sinks = append(sinks, gcal)
			log.Info("Google Calendar sink enabled (calendar=%s)", gcalCfg.CalendarID)
		}
	}

	var publisher *amqpevents.Publisher
	if nc.AMQP.URL != "" {
		publisher, err = amqpevents.NewPublisher(nc.AMQP.URL, nc.AMQP.Exchange, log)
		if err != nil {
			log.Error("AMQP sink disabled: %v", err)
		} else {
			sinks = append(sinks, publisher)
			log.Info("AMQP sink enabled (exchange=%s)", nc.AMQP.Exchange)
		}
	}

	if nc.Webhook.URL != "" {
		sinks = append(sinks, webhook.NewClient(nc.Webhook.URL, nc.Webhook.Secret, time.Duration(nc.Webhook.Timeout)*time.Second, log))
		log.Info("Webhook sink enabled (url=%s)", nc.Webhook.URL)
	}

	recipients := make([]notifications.Recipient, 0, len(nc.Recipients))
	for _, r := range nc.Recipients {
		recipients = append(recipients, notifications.Recipient{
			Party:    notifications.Party{Name: r.Name, Email: r.Email},
			Optional: r.Optional,
		})
	}

	invites := notifications.NewInviteBuilder(notifications.InviteConfig{
		Summary:    nc.Invite.Summary,
		Location:   nc.Invite.Location,
		Organizer:  notifications.Party{Name: nc.Organizer.Name, Email: nc.Organizer.Email},
		Recipients: recipients,
		TimeZone:   policy.Location(),
	})

	dispatcher := notifications.NewDispatcher(invites, sinks, metricsCollector, log, notifications.Options{
		QueueSize:       nc.QueueSize,
		Workers:         nc.Workers,
		DeliveryTimeout: time.Duration(nc.DeliveryTimeout) * time.Second,
		Rate:            nc.Rate,
		Burst:           nc.Burst,
	})
	dispatcher.Start()

	// Инициализируем сервисы
	guard := adminauth.NewGuard(cfg.Admin.Secret)
	if cfg.Admin.Secret == "" {
		log.Warn("Admin secret is empty: admin endpoints will reject every request")
	}
	blackoutSvc := blackoutsService.NewService(store, guard, metricsCollector, log)
	exportSvc := bookingsService.NewService(store, guard, log)

	// Инициализируем use cases
	submitBookingUseCase := submitBookingUC.NewUseCase(store, policy, dispatcher, metricsCollector, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store, policy, log)

	// Инициализируем handlers
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listBlackouts := listBlackoutsHandler.NewHandler(blackoutSvc, log)
	toggleBlackout := toggleBlackoutHandler.NewHandler(blackoutSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(exportSvc, log)
	health := healthHandler.NewHandler(store, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer(log), middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// Список выходных дней
	api.HandleFunc("/blackouts", listBlackouts.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (секрет в теле запроса или X-Admin-Secret)
	// ============================================================

	api.HandleFunc("/admin/blackouts", toggleBlackout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/bookings/export", exportBookings.Handle).Methods(http.MethodGet)

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

	// Порядок: HTTP сервер, очередь уведомлений, записи в зеркало, соединения
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("Notifications not drained: %v", err)
	}

	if err := store.Close(shutdownCtx); err != nil {
		log.Error("Mirror writes not drained: %v", err)
	}

	if redisMirror != nil {
		if err := redisMirror.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close AMQP publisher: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// openPrimary открывает основное хранилище по storage.driver
// Для SQL-драйверов возвращает также *sql.DB, который нужно закрыть
func openPrimary(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (availability.BookingStore, availability.BlackoutStore, *sql.DB, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage: bookings are lost on restart")
		mem := memory.NewStore()
		return mem, mem, nil, nil
	}

	var (
		driverName string
		dsn        string
		dialect    sqlbuilder.Dialect
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		driverName, dsn, dialect = "postgres", cfg.Database.DSN(), sqlbuilder.DialectPostgres
	case config.DriverSQLite:
		driverName, dsn, dialect = "sqlite3", cfg.SQLite.Path+"?_busy_timeout=5000&_journal_mode=WAL", sqlbuilder.DialectSQLite
	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s: %w", driverName, err)
	}

	// Настраиваем connection pool
	if dialect == sqlbuilder.DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	builder, err := sqlbuilder.New(dialect)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	var exec dbmetrics.DBExecutor = db
	if m != nil {
		exec = dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")
	}

	bookings := bookingRepo.NewRepository(exec, builder)
	blackouts := blackoutRepo.NewRepository(exec, builder)

	if err := bookings.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	if err := blackouts.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	log.Info("Successfully connected to %s storage", cfg.Storage.Driver)
	return bookings, blackouts, db, nil
}
