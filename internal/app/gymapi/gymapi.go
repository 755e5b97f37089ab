// Package gymapi собирает и запускает HTTP-приложение зала: хранилище,
// миграции, кеш, брокер событий, сервисы и маршруты.
package gymapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/dparedesb/gymcontrol/internal/cache"
	"github.com/dparedesb/gymcontrol/internal/config"
	"github.com/dparedesb/gymcontrol/internal/lib/jwt"
	"github.com/dparedesb/gymcontrol/internal/membership"
	"github.com/dparedesb/gymcontrol/internal/migrations"
	"github.com/dparedesb/gymcontrol/internal/rabbitmq"
	authservice "github.com/dparedesb/gymcontrol/internal/services/auth"
	classservice "github.com/dparedesb/gymcontrol/internal/services/classsession"
	memberservice "github.com/dparedesb/gymcontrol/internal/services/member"
	membershipservice "github.com/dparedesb/gymcontrol/internal/services/membership"
	paymentservice "github.com/dparedesb/gymcontrol/internal/services/payment"
	planservice "github.com/dparedesb/gymcontrol/internal/services/plan"
	productservice "github.com/dparedesb/gymcontrol/internal/services/product"
	reportservice "github.com/dparedesb/gymcontrol/internal/services/report"
	saleservice "github.com/dparedesb/gymcontrol/internal/services/sale"
	validationservice "github.com/dparedesb/gymcontrol/internal/services/validation"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// App — HTTP-приложение зала с его внешними зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

// New собирает приложение: подключает PostgreSQL, накатывает миграции,
// поднимает Redis и RabbitMQ, строит сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnection.AddressRabbit, cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	accessOpts := membership.Options{
		ExpiringSoonDays: cfg.Access.ExpiringSoonThresholdDays,
		AdmitOnGrace:     cfg.Access.AdmitOnGraceStatuses,
	}

	authService := authservice.NewAuthService(db, jwtMaker)
	memberService := memberservice.NewMemberService(db, cacheRedis, logger)
	planService := planservice.NewPlanService(db, logger)
	membershipService := membershipservice.NewMembershipService(db, cacheRedis, logger)
	paymentService := paymentservice.NewPaymentService(db, cacheRedis, logger)
	productService := productservice.NewProductService(db, logger)
	saleService := saleservice.NewSaleService(db, logger)
	classService := classservice.NewClassService(db, logger)
	reportService := reportservice.NewReportService(db, time.Now, accessOpts, logger)
	validationService := validationservice.NewValidationService(
		db, db, cacheRedis,
		rabbitmq.NewValidationPublisher(ch),
		time.Now, accessOpts,
		cfg.RedisConnection.SnapshotTTL,
		logger,
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:       authService,
		Member:     memberService,
		Plan:       planService,
		Membership: membershipService,
		Payment:    paymentService,
		Product:    productService,
		Sale:       saleService,
		Class:      classService,
		Report:     reportService,
		Validation: validationService,
		Logs:       db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста
// с пятнадцатисекундным таймаутом на graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		a.amqp.Close()
		return err
	}
}
