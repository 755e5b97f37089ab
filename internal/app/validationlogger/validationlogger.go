// Package validationlogger — воркер журнала валидаций: читает события
// решений о допуске из RabbitMQ и пишет их в PostgreSQL. Запись идёт
// отдельно от горячего пути валидации, поэтому недоступность базы
// не влияет на работу турникета.
package validationlogger

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/dparedesb/gymcontrol/internal/config"
	"github.com/dparedesb/gymcontrol/internal/lib/sl"
	"github.com/dparedesb/gymcontrol/internal/models"
	"github.com/dparedesb/gymcontrol/internal/rabbitmq"
	"github.com/dparedesb/gymcontrol/internal/storage/repository"
)

// App — воркер журнала валидаций с его внешними зависимостями.
type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	db     *repository.Storage
	logger *slog.Logger
}

// New собирает воркер: подключает PostgreSQL и RabbitMQ.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnection.AddressRabbit, cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &App{
		conn:   conn,
		ch:     ch,
		db:     db,
		logger: logger,
	}, nil
}

// Run запускает потребление очереди событий валидации до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ValidationQueue, a.handleMessage(ctx))
	if err != nil {
		a.logger.Error("failed to start validation queue consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("validation logger shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	a.db.DB.Close()

	return nil
}

func (a *App) handleMessage(ctx context.Context) func([]byte) error {
	return func(body []byte) error {
		var entry models.ValidationLog
		if err := json.Unmarshal(body, &entry); err != nil {
			a.logger.Error("failed to unmarshal validation log", sl.Err(err))
			// Битое сообщение нет смысла возвращать в очередь.
			return nil
		}

		id, err := a.db.AppendValidationLog(ctx, entry)
		if err != nil {
			a.logger.Error("failed to append validation log", sl.Err(err))
			return err
		}

		a.logger.Info("validation log stored",
			slog.Int64("id", id),
			slog.String("type", entry.ValidationType),
			slog.Bool("success", entry.Success),
		)
		return nil
	}
}
