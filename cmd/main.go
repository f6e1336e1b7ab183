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
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminLoginHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/admin_login"
	createCheckoutHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_checkout"
	exportBookingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/export_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_catalog"
	listBookingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_bookings"
	updateCatalogHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/update_catalog"
	validateBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/validate_booking"
	verifyPaymentHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/verify_payment"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
	adminService "github.com/m04kA/SMC-StudioBooking/internal/service/admin"
	bookingsService "github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
	createCheckoutUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_checkout"
	expirePendingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/expire_pending"
	getAvailabilityUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
	validateBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/validate_booking"
	verifyPaymentUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/verify_payment"
	"github.com/m04kA/SMC-StudioBooking/pkg/jwt"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func main() {
	// Локальный .env не обязателен
	_ = godotenv.Load()

	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-StudioBooking...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	store, err := openStorage(cfg, metricsCollector, log, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Политика расписания студии
	loc, _ := cfg.Schedule.Location()
	schedule, err := availability.NewSchedule(
		cfg.Schedule.OpeningTime,
		cfg.Schedule.ClosingTime,
		cfg.Schedule.StepMinutes,
		cfg.Schedule.BufferMinutes,
		cfg.Schedule.MinBookingMinutes,
		loc,
	)
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	log.Info("Schedule: %s - %s, step=%d min, buffer=%d min, timezone=%s",
		schedule.OpeningTime(), schedule.ClosingTime(), cfg.Schedule.StepMinutes, cfg.Schedule.BufferMinutes, loc)

	// Неоплаченное бронирование держит слоты TTL сессии плюс запас
	pendingTTL := cfg.Payments.PendingTTL()
	pendingHold := pendingTTL + cfg.Reaper.Grace()

	// Интеграция с платежным провайдером
	if cfg.Payments.SecretKey == "" {
		log.Warn("Stripe secret key is not configured, checkout will fail")
	}
	paymentsClient := payments.NewClient(
		cfg.Payments.SecretKey,
		cfg.Pricing.Currency,
		cfg.Payments.SuccessURL,
		cfg.Payments.CancelURL,
		log,
	)

	// Токены администратора
	if cfg.Admin.JWTSecret == "" {
		log.Warn("JWT secret is not configured, admin login is disabled")
	}
	tokens := jwt.NewService(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL(), cfg.Admin.Issuer)
	adminPasswordHash := cfg.Admin.PasswordHash
	if cfg.Admin.JWTSecret == "" {
		adminPasswordHash = ""
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.bookings, log)
	catalogSvc := catalogService.NewService(store.catalog, store.tx, cfg.Schedule.MinBookingMinutes, log)
	adminSvc := adminService.NewService(cfg.Admin.Username, adminPasswordHash, tokens, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		store.bookings,
		store.catalog,
		schedule,
		pendingHold,
		cfg.Schedule.MaxRangeDays,
		log,
	)

	validateBookingUseCase := validateBookingUC.NewUseCase(
		store.bookings,
		store.catalog,
		schedule,
		pendingHold,
		metricsCollector,
		log,
	)

	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		store.bookings,
		store.catalog,
		paymentsClient,
		store.tx,
		schedule,
		types.Cents(cfg.Pricing.SurchargeCents),
		pendingTTL,
		pendingHold,
		metricsCollector,
		log,
	)

	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(
		store.bookings,
		paymentsClient,
		metricsCollector,
		log,
	)

	// Фоновая отмена протухших pending бронирований
	var reaper *expirePendingUC.Scheduler
	if cfg.Reaper.Enabled {
		expireUseCase := expirePendingUC.NewUseCase(store.bookings, paymentsClient, pendingHold, metricsCollector, log)
		reaper = expirePendingUC.NewScheduler(expireUseCase, cfg.Reaper.Interval(), log)
		reaper.Start(context.Background())
		log.Info("Pending reaper started (interval=%s, hold=%s)", cfg.Reaper.Interval(), pendingHold)
	}

	// Инициализируем handlers
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	adminLogin := adminLoginHandler.NewHandler(adminSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateCatalog := updateCatalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Каталог студий и доп. услуг
	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)

	// Занятость студии по дням
	api.HandleFunc("/studios/{studio}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Проверка черновика бронирования
	api.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)

	// Оформление бронирования и переход к оплате
	api.HandleFunc("/checkout", createCheckout.Handle).Methods(http.MethodPost)

	// Проверка оплаты после возврата со страницы Stripe
	api.HandleFunc("/payments/verify", verifyPayment.Handle).Methods(http.MethodGet)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен с ролью admin)
	// ============================================================

	protected := api.PathPrefix("/admin").Subrouter()
	protected.Use(middleware.AdminAuth(tokens, log))

	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/catalog", updateCatalog.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер. CORS оборачивает весь роутер, чтобы отвечать на preflight
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.Server.AllowedOrigins)(r),
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

	if reaper != nil {
		reaper.Stop()
		log.Info("Pending reaper stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
