// Package accountservice собирает приложение сервиса аккаунтов: хранилище,
// миграции, кэш, почтовый транспорт, брокер событий, хранилище аватаров,
// бизнес-сервисы и HTTP-сервер с graceful shutdown.
package accountservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/account-service/internal/cache"
	"github.com/magabrotheeeer/account-service/internal/config"
	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/account-service/internal/lib/smtp"
	"github.com/magabrotheeeer/account-service/internal/migrations"
	authservice "github.com/magabrotheeeer/account-service/internal/services/auth"
	eventsservice "github.com/magabrotheeeer/account-service/internal/services/events"
	senderservice "github.com/magabrotheeeer/account-service/internal/services/sender"
	uploadsservice "github.com/magabrotheeeer/account-service/internal/services/uploads"
	userservice "github.com/magabrotheeeer/account-service/internal/services/user"
	"github.com/magabrotheeeer/account-service/internal/storage/repository"
)

// App хранит собранные зависимости приложения и управляет их жизненным циклом.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
}

// New собирает приложение из конфигурации: подключает зависимости,
// прогоняет миграции и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTPConnection, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	// Брокер событий опционален: без rabbit_url регистрация просто
	// не публикует user.registered.
	var amqpConn *amqp.Connection
	var events authservice.EventPublisher
	if cfg.RabbitURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitURL, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetAccountEventQueues())
		if err != nil {
			return nil, err
		}
		events = eventsservice.NewEventsService(ch)
	}

	imageStore, err := newImageStore(ctx, cfg.Uploads)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	userService := userservice.NewUserService(db, cacheRedis, logger)
	authService := authservice.NewAuthService(db, jwtMaker, senderService, events, userService, cfg.AppBaseURL, logger)
	uploadsService := uploadsservice.NewUploadsService(imageStore, db, userService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, uploadsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// newImageStore выбирает хранилище аватаров по конфигурации.
func newImageStore(ctx context.Context, cfg config.Uploads) (uploadsservice.ImageStore, error) {
	switch cfg.StorageType {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return uploadsservice.NewS3Store(client, cfg.S3Bucket, cfg.S3KeyPrefix), nil
	case "local", "":
		return uploadsservice.NewLocalStore(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unknown uploads storage type: %s", cfg.StorageType)
	}
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки сервера.
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
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
